//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=mailer_test
package mailer

import "gopkg.in/gomail.v2"

// sender открывает SMTP сессию. *gomail.Dialer подходит как есть.
type sender interface {
	Dial() (gomail.SendCloser, error)
}
