package admin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/folio/internal/domain"
)

// Form field keys
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldDescription   = "description"
	FieldISBN          = "isbn"
	FieldPublishedYear = "published_year"
	FieldPrice         = "price"
	FieldDownloadLink  = "download_link"
)

// Field is one input of the book form
type Field struct {
	Key   string
	Label string
}

// CreateFields lists the inputs for a new record
func CreateFields() []Field {
	return []Field{
		{Key: FieldTitle, Label: "Enter the title of the book:"},
		{Key: FieldAuthor, Label: "Enter the author of the book:"},
		{Key: FieldDescription, Label: "Enter the book description:"},
		{Key: FieldISBN, Label: "Enter the ISBN of the book:"},
		{Key: FieldPublishedYear, Label: "Enter the published year of the book:"},
		{Key: FieldPrice, Label: "Enter the price of the book:"},
		{Key: FieldDownloadLink, Label: "Enter the download link (include https://):"},
	}
}

// UpdateHint explains the edit form. The catalog listing carries no download
// link, so there is no current value to keep.
const UpdateHint = "Leave a field blank to keep its current value. The download link is required."

// UpdateFields lists the inputs for editing book, labelled with its current
// values. The ISBN is the record's key and cannot be edited.
func UpdateFields(book domain.Book) []Field {
	return []Field{
		{Key: FieldTitle, Label: fmt.Sprintf("Enter the new title of the book (old version: title is %q):", book.Title)},
		{Key: FieldAuthor, Label: fmt.Sprintf("Enter the new author of the book (old version: author is %q):", book.Author)},
		{Key: FieldDescription, Label: fmt.Sprintf("Enter the new book description (old version: description is %q):", book.Description)},
		{Key: FieldPublishedYear, Label: fmt.Sprintf("Enter the new published year of the book (old version: published year is %q):", book.YearString())},
		{Key: FieldPrice, Label: fmt.Sprintf("Enter the new price of the book (old version: price is %q):", strconv.FormatFloat(book.Price, 'f', -1, 64))},
		{Key: FieldDownloadLink, Label: "Enter the download link, required (include https://):"},
	}
}

// ParseForm builds a BookInput from form answers. Blank answers fall back
// to base, so an update can leave fields untouched.
func ParseForm(values map[string]string, base domain.BookInput) (domain.BookInput, error) {
	input := base

	text := func(key string, dst *string) {
		if v := strings.TrimSpace(values[key]); v != "" {
			*dst = v
		}
	}
	text(FieldTitle, &input.Title)
	text(FieldAuthor, &input.Author)
	text(FieldDescription, &input.Description)
	text(FieldISBN, &input.ISBN)
	text(FieldDownloadLink, &input.DownloadLink)

	if v := strings.TrimSpace(values[FieldPublishedYear]); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return input, fmt.Errorf("%w: published year must be a whole number", domain.ErrInvalidInput)
		}
		input.PublishedYear = year
	}

	if v := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(values[FieldPrice]), "$")); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return input, fmt.Errorf("%w: price must be a number", domain.ErrInvalidInput)
		}
		input.Price = price
	}

	return input, nil
}
