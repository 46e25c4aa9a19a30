package controllers

import (
	"github.com/Masterminds/squirrel"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type pageParams struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
}

func (p pageParams) offset() int {
	off := (p.Page - 1) * p.Limit
	if off < 0 {
		off = 0
	}
	return off
}

// applySearch adds the listing filter: case-insensitive substring match on
// name or address. The count query and the data query both go through this
// one function so their predicates can never diverge.
func applySearch(b squirrel.SelectBuilder, search string) squirrel.SelectBuilder {
	if search == "" {
		return b
	}
	pattern := "%" + search + "%"
	return b.Where(squirrel.Or{
		squirrel.ILike{"r.name": pattern},
		squirrel.ILike{"r.address": pattern},
	})
}

// totalPages is ceil(totalCount/limit); a non-positive limit is defined as
// a single page.
func totalPages(totalCount, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := totalCount / limit
	if totalCount%limit != 0 {
		pages++
	}
	return pages
}
