package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// TableNamePattern определяет допустимое имя синхронизируемой таблицы:
// латинские буквы, цифры и подчеркивание, не с цифры, до 63 символов
var TableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// MaxTitleLen максимальная длина заголовка в символах
const MaxTitleLen = 256

// ValidateTableName проверяет имя таблицы из конфигурации
func ValidateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}

	if !TableNamePattern.MatchString(name) {
		return fmt.Errorf("table name %q can only contain letters (a-z, A-Z), numbers (0-9) and underscores (_)", name)
	}

	return nil
}

// ValidateTitle проверяет заголовок item
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty")
	}

	if utf8.RuneCountInString(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}

	return nil
}
