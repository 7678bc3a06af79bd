// internal/reviews/aggregator.go
package reviews

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nexura/storefront/internal/models"
)

// EditedSuffix marks a review date after an in-place edit. It is display
// text, appended once per edit on the fresh date string.
const EditedSuffix = " (Edited)"

var (
	ErrNotFound     = errors.New("reviews: review not found")
	ErrNotOwner     = errors.New("reviews: review belongs to another user")
	ErrInvalidStars = errors.New("reviews: rating must be between 1 and 5")
	ErrEmptyText    = errors.New("reviews: review text is required")
)

// Identity names the acting user. Older reviews predate stable user ids, so
// ownership falls back to the reviewer email when the stored id is empty.
type Identity struct {
	UserID string
	Email  string
}

func (id Identity) owns(r *models.Review) bool {
	if r.UserID != "" && id.UserID != "" {
		return r.UserID == id.UserID
	}
	return r.ReviewerEmail != "" && strings.EqualFold(r.ReviewerEmail, id.Email)
}

// likeKey is the identifier recorded in the likes list.
func (id Identity) likeKey() string {
	if id.UserID != "" {
		return id.UserID
	}
	return strings.ToLower(id.Email)
}

// Submit validates and prepends a review, newest first. It returns the new
// list; the caller persists the whole list as one unit.
func Submit(list models.ReviewList, review models.Review) (models.ReviewList, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return list, ErrInvalidStars
	}
	if strings.TrimSpace(review.ReviewText) == "" {
		return list, ErrEmptyText
	}
	if review.Likes == nil {
		review.Likes = []string{}
	}

	out := make(models.ReviewList, 0, len(list)+1)
	out = append(out, review)
	out = append(out, list...)
	return out, nil
}

// Edit rewrites a review in place, keeping its position, likes, and author
// id. The reviewer snapshot fields are refreshed from the edit, since the
// profile may have changed since submission. The date is replaced with the
// fresh one plus the edited marker.
func Edit(list models.ReviewList, actor Identity, index int, edit models.Review) (models.ReviewList, error) {
	if index < 0 || index >= len(list) {
		return list, ErrNotFound
	}
	if !actor.owns(&list[index]) {
		return list, ErrNotOwner
	}
	if edit.Rating < 1 || edit.Rating > 5 {
		return list, ErrInvalidStars
	}
	if strings.TrimSpace(edit.ReviewText) == "" {
		return list, ErrEmptyText
	}

	out := make(models.ReviewList, len(list))
	copy(out, list)
	out[index].Rating = edit.Rating
	out[index].ReviewText = edit.ReviewText
	out[index].Date = edit.Date + EditedSuffix
	out[index].ReviewerName = edit.ReviewerName
	out[index].ReviewerPhoto = edit.ReviewerPhoto
	out[index].ReviewerEmail = edit.ReviewerEmail
	return out, nil
}

// Delete removes a review the actor owns.
func Delete(list models.ReviewList, actor Identity, index int) (models.ReviewList, error) {
	if index < 0 || index >= len(list) {
		return list, ErrNotFound
	}
	if !actor.owns(&list[index]) {
		return list, ErrNotOwner
	}

	out := make(models.ReviewList, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return out, nil
}

// ToggleLike adds the actor to the likes list, or removes them when already
// present. Duplicates from older data collapse to a single entry on removal,
// so the toggle is idempotent per state.
func ToggleLike(list models.ReviewList, actor Identity, index int) (models.ReviewList, error) {
	if index < 0 || index >= len(list) {
		return list, ErrNotFound
	}

	key := actor.likeKey()
	if key == "" {
		return list, ErrNotOwner
	}

	out := make(models.ReviewList, len(list))
	copy(out, list)

	existing := out[index].Likes
	kept := make([]string, 0, len(existing)+1)
	found := false
	for _, k := range existing {
		if k == key {
			found = true
			continue
		}
		kept = append(kept, k)
	}
	if !found {
		kept = append(kept, key)
	}
	out[index].Likes = kept
	return out, nil
}

// Distribution recomputes the per-value counts from scratch. Keys are the
// rating values rendered as their shortest decimal form ("4", "4.5").
func Distribution(list models.ReviewList) models.RatingMap {
	dist := models.RatingMap{}
	for i := range list {
		dist[ratingKey(list[i].Rating)]++
	}
	return dist
}

// Average is the mean rating, zero for an empty list.
func Average(list models.ReviewList) float64 {
	if len(list) == 0 {
		return 0
	}
	var sum float64
	for i := range list {
		sum += list[i].Rating
	}
	return sum / float64(len(list))
}

func ratingKey(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
