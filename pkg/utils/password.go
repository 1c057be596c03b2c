package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt 加盐散列（替代旧版前端的单轮 SHA-256）
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
