package models

import (
	"fmt"
	"strings"
)

// CertificateSortField enumerates the columns a certificate search may be
// ordered by. Anything outside this set is rejected before query construction
// so that no caller-supplied string ever reaches an ORDER BY clause.
type CertificateSortField string

const (
	SortByName      CertificateSortField = "name"
	SortByCreatedAt CertificateSortField = "created_at"
	SortByPrice     CertificateSortField = "price"
)

// Valid checks if the sort field is part of the whitelist
func (f CertificateSortField) Valid() bool {
	switch f {
	case SortByName, SortByCreatedAt, SortByPrice:
		return true
	default:
		return false
	}
}

// Column returns the database column the field maps to.
func (f CertificateSortField) Column() string {
	return string(f)
}

// ParseSortField maps external sort parameter values onto the whitelist.
func ParseSortField(s string) (CertificateSortField, error) {
	switch strings.TrimSpace(s) {
	case "name":
		return SortByName, nil
	case "date", "created_at", "createDate":
		return SortByCreatedAt, nil
	case "price":
		return SortByPrice, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// SortOrder is the direction of a certificate search ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder returns DESC only for the literal string "DESC"; every other
// value, including lowercase variants, sorts ascending.
func ParseSortOrder(s string) SortOrder {
	if s == "DESC" {
		return SortDesc
	}
	return SortAsc
}

// CertificateSearchCriteria carries the optional constraints of a certificate
// search. Absent or blank fields mean "no constraint". The criteria is a pure
// data carrier: it holds no connection and performs no I/O.
type CertificateSearchCriteria struct {
	PartOfName        *string
	PartOfDescription *string
	TagName           *string
	TagNames          []string
	SortBy            *CertificateSortField
	SortOrder         SortOrder
}

// HasPartOfName reports whether a non-blank name substring constraint is set
func (c CertificateSearchCriteria) HasPartOfName() bool {
	return c.PartOfName != nil && strings.TrimSpace(*c.PartOfName) != ""
}

// HasPartOfDescription reports whether a non-blank description substring constraint is set
func (c CertificateSearchCriteria) HasPartOfDescription() bool {
	return c.PartOfDescription != nil && strings.TrimSpace(*c.PartOfDescription) != ""
}

// HasTagName reports whether a non-blank single tag constraint is set
func (c CertificateSearchCriteria) HasTagName() bool {
	return c.TagName != nil && strings.TrimSpace(*c.TagName) != ""
}

// HasTagNames reports whether a multi-tag union constraint is set
func (c CertificateSearchCriteria) HasTagNames() bool {
	return len(c.TagNames) > 0
}

// HasSort reports whether an ordering was requested
func (c CertificateSearchCriteria) HasSort() bool {
	return c.SortBy != nil
}

// NewCertificateSearchCriteria builds a criteria from untrusted external
// input. Blank strings normalize to absent constraints, blank entries are
// dropped from the tag list, and the sort field is validated against the
// whitelist. It never panics on malformed input.
func NewCertificateSearchCriteria(name, description, tagName string, tagNames []string, sortBy, sortOrder string) (CertificateSearchCriteria, error) {
	var criteria CertificateSearchCriteria

	if v := strings.TrimSpace(name); v != "" {
		criteria.PartOfName = &v
	}
	if v := strings.TrimSpace(description); v != "" {
		criteria.PartOfDescription = &v
	}
	if v := strings.TrimSpace(tagName); v != "" {
		criteria.TagName = &v
	}
	for _, t := range tagNames {
		if v := strings.TrimSpace(t); v != "" {
			criteria.TagNames = append(criteria.TagNames, v)
		}
	}

	criteria.SortOrder = ParseSortOrder(sortOrder)
	if strings.TrimSpace(sortBy) != "" {
		field, err := ParseSortField(sortBy)
		if err != nil {
			return CertificateSearchCriteria{}, err
		}
		criteria.SortBy = &field
	}

	return criteria, nil
}

// MaxPageSize bounds a single result page.
const MaxPageSize = 100

// PageRequest is a 1-based offset/limit window over a result set.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest validates page bounds up front so repositories never compute
// a negative offset.
func NewPageRequest(page, pageSize int) (PageRequest, error) {
	if page < 1 {
		return PageRequest{}, fmt.Errorf("page must be at least 1, got %d", page)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return PageRequest{}, fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, pageSize)
	}
	return PageRequest{Page: page, PageSize: pageSize}, nil
}

// Offset returns the number of rows to skip: (page-1)*pageSize.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of rows in the page.
func (p PageRequest) Limit() int {
	return p.PageSize
}
