package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

const (
	notAvailable = "N/A"
	reportDate   = "1/2/2006"
)

// ReportFilename names the export for the given day.
func ReportFilename(day time.Time) string {
	return "skillswap-report-" + day.Format("2006-01-02") + ".csv"
}

// BuildReport renders the three report sections. Every value is double-quoted,
// missing optional values print N/A and sections are separated by a blank line.
func BuildReport(users []user.User, swaps []swap.SwapRequest, ratings []rating.Rating) string {
	var lines []string

	lines = append(lines, "USERS REPORT", "Name,Email,Location,Join Date")
	for _, u := range users {
		lines = append(lines, csvLine(u.FullName, u.Email, orNA(u.Location), u.CreatedAt.Format(reportDate)))
	}

	lines = append(lines, "", "SWAPS REPORT", "Requester,Provider,Requested Skill,Offered Skill,Status,Date")
	for _, s := range swaps {
		requester, provider, requested, offered := notAvailable, notAvailable, notAvailable, notAvailable
		if s.Requester != nil {
			requester = s.Requester.FullName
		}
		if s.Provider != nil {
			provider = s.Provider.FullName
		}
		if s.RequestedSkill != nil {
			requested = s.RequestedSkill.Name
		}
		if s.OfferedSkill != nil {
			offered = s.OfferedSkill.Name
		}
		lines = append(lines, csvLine(requester, provider, requested, offered, string(s.Status), s.CreatedAt.Format(reportDate)))
	}

	lines = append(lines, "", "RATINGS REPORT", "Rater,Rated,Rating,Feedback,Date")
	for _, r := range ratings {
		rater, rated := notAvailable, notAvailable
		if r.Rater != nil {
			rater = r.Rater.FullName
		}
		if r.Rated != nil {
			rated = r.Rated.FullName
		}
		lines = append(lines, csvLine(rater, rated, strconv.Itoa(r.Rating), orNA(r.Feedback), r.CreatedAt.Format(reportDate)))
	}

	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// csvLine quotes every field, doubling embedded quotes.
func csvLine(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
