package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxNameLen             = 200
	maxShortDescriptionLen = 200
	shortDescriptionCut    = 150
)

// 商品。カタログAPIのJSONでは id を _id で返す。
type Product struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	Name             string    `gorm:"type:varchar(200);not null" json:"name"`
	Slug             string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	ShortDescription string    `gorm:"type:varchar(200)" json:"shortDescription"`
	Price            float64   `gorm:"not null" json:"price"`
	Images           []string  `gorm:"serializer:json;type:jsonb;not null" json:"images"`
	Category         string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Stock            int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify は名前から URL 用の slug を作る。
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugUnsafe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Normalize は保存前の整形（trim / slug / shortDescription の補完）。
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.ShortDescription = strings.TrimSpace(p.ShortDescription)
	p.Category = strings.TrimSpace(p.Category)

	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}

	if p.ShortDescription == "" && p.Description != "" {
		p.ShortDescription = truncateRunes(p.Description, shortDescriptionCut) + "..."
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	p.Images = images
}

// Validate は最初に見つかった違反を返す。
func (p Product) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("Product name is required")
	case utf8.RuneCountInString(p.Name) > maxNameLen:
		return errors.New("Product name cannot exceed 200 characters")
	case p.Slug == "":
		return errors.New("Product slug is required")
	case p.Description == "":
		return errors.New("Product description is required")
	case utf8.RuneCountInString(p.ShortDescription) > maxShortDescriptionLen:
		return errors.New("Short description cannot exceed 200 characters")
	case p.Price < 0:
		return errors.New("Price cannot be negative")
	case len(p.Images) == 0:
		return errors.New("At least one image is required")
	case p.Category == "":
		return errors.New("Product category is required")
	case p.Stock < 0:
		return errors.New("Stock cannot be negative")
	}
	return nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
