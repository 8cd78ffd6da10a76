package constants

import "time"

func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
