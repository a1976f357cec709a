package services

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// nowTimestamp is the single clock used to stamp a whole cascade, so every
// row touched by one delete shares the same deleted_at value.
func nowTimestamp() time.Time {
	return time.Now().UTC()
}

var colorHexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateTitle(title string) error {
	return validation.Validate(title,
		validation.Required,
		validation.Length(1, 512),
	)
}

// validateColorHex accepts #RRGGBB; empty string means "clear the color" and
// is handled by the caller.
func validateColorHex(colorHex string) error {
	return validation.Validate(colorHex,
		validation.Match(colorHexPattern),
	)
}

// nextOrderIndex computes MAX(order_index)+1 over a sibling group, counting
// soft-deleted siblings so a restored row never collides with a newer one.
// Empty groups start at 1, matching the normalized 1..N convention.
func nextOrderIndex(tx *gorm.DB, table, where string, args ...interface{}) (int, error) {
	query := "SELECT COALESCE(MAX(order_index), 0) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var max int
	if err := tx.Raw(query, args...).Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}
