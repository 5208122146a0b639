package respond

import (
	"regexp"
)

var (
	// データベースパスワードパターン（URL形式のDSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// キー/値形式のDSN（password=... ）
	kvPasswordPattern = regexp.MustCompile(`(?i)\b(password)=('[^']*'|\S+)`)

	// 認証ヘッダの値
	tokenHeaderPattern = regexp.MustCompile(`(?i)\b(supertoken|authorization)(:\s*|=)(\S+)`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "$1=****")
	msg = tokenHeaderPattern.ReplaceAllString(msg, "$1$2****")
	return msg
}
