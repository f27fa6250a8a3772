package policy

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
)

// ProductQuery holds the optional product search keys.
type ProductQuery struct {
	UserID   string
	Search   string
	Category string
}

// OrderQuery holds the optional order search keys. Dates use ParseDate layouts.
type OrderQuery struct {
	UserID    string
	StartDate string
	EndDate   string
}

// UserQuery holds the optional user search keys.
type UserQuery struct {
	Email  string
	Search string
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ProductSearchFilter composes owner equality, a category/name disjunction and the
// active clause. Keys that are empty are left out entirely.
func ProductSearchFilter(q ProductQuery) (bson.M, error) {
	filter := bson.M{}
	if q.UserID != "" {
		owner, err := ToRecordID(q.UserID)
		if err != nil {
			return nil, err
		}
		filter["user_id"] = owner
	}
	var or bson.A
	if q.Category != "" {
		or = append(or, bson.M{"category": q.Category})
	}
	if q.Search != "" {
		or = append(or, bson.M{"name": containsFold(q.Search)})
	}
	if len(or) > 0 {
		filter["$or"] = or
	}
	return Active(filter), nil
}

// OrderSearchFilter composes owner equality and the half-open [start, end) range on
// createdAt. The range is applied only when both bounds are present.
func OrderSearchFilter(q OrderQuery) (bson.M, error) {
	filter := bson.M{}
	if q.UserID != "" {
		owner, err := ToRecordID(q.UserID)
		if err != nil {
			return nil, err
		}
		filter["user"] = owner
	}
	if q.StartDate != "" && q.EndDate != "" {
		start, err := ParseDate(q.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := ParseDate(q.EndDate)
		if err != nil {
			return nil, err
		}
		filter["createdAt"] = bson.M{"$gte": start, "$lt": end}
	}
	return Active(filter), nil
}

// UserSearchFilter matches active users by exact email and a case-insensitive name fragment.
func UserSearchFilter(q UserQuery) bson.M {
	filter := bson.M{}
	if q.Email != "" {
		filter["email"] = q.Email
	}
	if q.Search != "" {
		filter["name"] = containsFold(q.Search)
	}
	return Active(filter)
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp. Calendar dates are UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.Validationf("invalid date %q", s)
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
