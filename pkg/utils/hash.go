package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt refuses inputs longer than this many bytes.
const MaxPasswordBytes = 72

func HashPassword(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	return err == nil
}
