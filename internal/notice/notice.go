package notice

import (
	"github.com/frahmantamala/enterprise-admin/internal/core/common/validation"
	noticeDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/notice"
)

const (
	DefaultPage     = 1
	DefaultPerPage  = 10
	MaxPerPage      = 100
	summaryLength   = 100
	summaryMarker   = "..."
	unknownUsername = "unknown"
)

type Summary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type Detail struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type Page struct {
	Notices     []Summary `json:"notices"`
	Total       int64     `json:"total"`
	Pages       int64     `json:"pages"`
	CurrentPage int       `json:"current_page"`
}

// Summarize keeps the first 100 characters and always appends the marker.
func Summarize(content string) string {
	runes := []rune(content)
	if len(runes) > summaryLength {
		runes = runes[:summaryLength]
	}
	return string(runes) + summaryMarker
}

func creator(v noticeDatamodel.View) string {
	if v.CreatorUsername == nil {
		return unknownUsername
	}
	return *v.CreatorUsername
}

func toSummary(v noticeDatamodel.View) Summary {
	return Summary{
		ID:        v.ID,
		Title:     v.Title,
		Content:   Summarize(v.Content),
		CreatedBy: creator(v),
		CreatedAt: validation.FormatTimestamp(v.CreatedAt),
	}
}

func toDetail(v *noticeDatamodel.View) *Detail {
	return &Detail{
		ID:        v.ID,
		Title:     v.Title,
		Content:   v.Content,
		CreatedBy: creator(*v),
		CreatedAt: validation.FormatTimestamp(v.CreatedAt),
	}
}
