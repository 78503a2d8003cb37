package utils

import (
	"fmt"
	"time"
)

// BirthDateLayout 出生日期格式 DD/MM/YYYY
const BirthDateLayout = "02/01/2006"

// AgeFromBirthDate 将 DD/MM/YYYY 格式的出生日期换算为周岁
func AgeFromBirthDate(birthDate string, now time.Time) (int, error) {
	born, err := time.ParseInLocation(BirthDateLayout, birthDate, now.Location())
	if err != nil {
		return 0, fmt.Errorf("parse birth date %q: %w", birthDate, err)
	}
	if born.After(now) {
		return 0, fmt.Errorf("birth date %q is in the future", birthDate)
	}

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age, nil
}
