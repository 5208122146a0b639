// Package article provides HTTP handlers for the /api/articles endpoints.
// Reads are public; writes pass through the token gate installed in front of
// the mux. Responses are JSON unless the client asks for XML.
package article

import (
	"encoding/xml"
	"time"

	"simple-cms/internal/domain/entity"
	artUC "simple-cms/internal/usecase/article"
)

// DTO is the read model of an article.
type DTO struct {
	XMLName   xml.Name  `json:"-" xml:"ArticleDto" swaggerignore:"true"`
	ID        int64     `json:"id" xml:"Id" example:"1"`
	Title     string    `json:"title" xml:"Title" example:"Article 1"`
	Body      string    `json:"body" xml:"Body" example:"Article body 1"`
	Timestamp time.Time `json:"timestamp" xml:"Timestamp" example:"2026-03-01T09:00:00Z"`
}

// ListDTO wraps a list of articles for XML output; JSON clients get a bare array.
type ListDTO struct {
	XMLName  xml.Name `xml:"ArrayOfArticleDto"`
	Articles []DTO    `xml:"ArticleDto"`
}

// UpdateDTO is the client-writable part of an article, used by POST, PUT and
// as the document a PATCH is applied to.
type UpdateDTO struct {
	Title string `json:"title" validate:"notblank,titlelen" example:"Article 1"`
	Body  string `json:"body" validate:"notblank" example:"Article body 1"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Timestamp: a.Timestamp.UTC(),
	}
}

func (d UpdateDTO) input() artUC.Input {
	return artUC.Input{Title: d.Title, Body: d.Body}
}

func fromInput(in artUC.Input) UpdateDTO {
	return UpdateDTO{Title: in.Title, Body: in.Body}
}
