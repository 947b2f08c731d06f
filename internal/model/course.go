package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Course publication states.
const (
	CourseStatusDraft     = "draft"
	CourseStatusPending   = "pending"
	CourseStatusPublished = "published"
	CourseStatusRejected  = "rejected"
)

// Course represents a course in the catalogue.
// DiscountPrice is the markdown taken off Price; zero means no discount.
type Course struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	ShortDescription string          `json:"shortDescription" db:"short_description"`
	InstructorID     uuid.UUID       `json:"instructorId" db:"instructor_id"`
	Price            decimal.Decimal `json:"price" db:"price"`
	DiscountPrice    decimal.Decimal `json:"discountPrice" db:"discount_price"`
	Status           string          `json:"status" db:"status"`
	IsPublished      bool            `json:"isPublished" db:"is_published"`
	SalesCount       int             `json:"salesCount" db:"sales_count"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
}

// CourseFilter narrows catalogue listings.
type CourseFilter struct {
	Search string
	Sort   string
	Limit  int
	Offset int
}

// Catalogue sort keys.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortPopular   = "popular"
)

// CoursePage is the body of GET /courses.
type CoursePage struct {
	Courses    []Course   `json:"courses"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination describes page of size limit within total results.
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}
