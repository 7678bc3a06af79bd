// internal/reviews/aggregator_test.go
package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexura/storefront/internal/models"
)

func review(userID, email, text string, rating float64) models.Review {
	return models.Review{
		UserID:        userID,
		ReviewerEmail: email,
		ReviewText:    text,
		Rating:        rating,
		Date:          "1 June 2025",
	}
}

func TestSubmitPrependsNewestFirst(t *testing.T) {
	list := models.ReviewList{review("u1", "a@x.com", "first", 4)}

	out, err := Submit(list, review("u2", "b@x.com", "second", 5))
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "second", out[0].ReviewText)
	assert.Equal(t, "first", out[1].ReviewText)
	assert.NotNil(t, out[0].Likes)
}

func TestSubmitValidation(t *testing.T) {
	_, err := Submit(nil, review("u1", "a@x.com", "ok", 0))
	assert.ErrorIs(t, err, ErrInvalidStars)

	_, err = Submit(nil, review("u1", "a@x.com", "ok", 6))
	assert.ErrorIs(t, err, ErrInvalidStars)

	_, err = Submit(nil, review("u1", "a@x.com", "   ", 3))
	assert.ErrorIs(t, err, ErrEmptyText)
}

func edit(text string, rating float64, date string) models.Review {
	return models.Review{
		Rating:     rating,
		ReviewText: text,
		Date:       date,
	}
}

func TestEditKeepsPositionAndMarksDate(t *testing.T) {
	list := models.ReviewList{
		review("u1", "a@x.com", "newest", 5),
		review("u2", "b@x.com", "target", 3),
	}
	list[1].Likes = []string{"u1"}

	out, err := Edit(list, Identity{UserID: "u2"}, 1, edit("reworded", 4, "2 June 2025"))
	assert.NoError(t, err)
	assert.Equal(t, "reworded", out[1].ReviewText)
	assert.Equal(t, 4.0, out[1].Rating)
	assert.Equal(t, "2 June 2025 (Edited)", out[1].Date)
	assert.Equal(t, []string{"u1"}, out[1].Likes)
	assert.Equal(t, "u2", out[1].UserID)

	// Original list untouched.
	assert.Equal(t, "target", list[1].ReviewText)
}

func TestEditRefreshesReviewerSnapshot(t *testing.T) {
	stale := review("u1", "old@x.com", "text", 4)
	stale.ReviewerName = "Old Name"
	stale.ReviewerPhoto = "old.jpg"
	list := models.ReviewList{stale}

	fresh := edit("updated", 4, "3 June 2025")
	fresh.ReviewerName = "New Name"
	fresh.ReviewerPhoto = "new.jpg"
	fresh.ReviewerEmail = "new@x.com"

	out, err := Edit(list, Identity{UserID: "u1"}, 0, fresh)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", out[0].ReviewerName)
	assert.Equal(t, "new.jpg", out[0].ReviewerPhoto)
	assert.Equal(t, "new@x.com", out[0].ReviewerEmail)
	assert.Equal(t, "u1", out[0].UserID)
}

func TestEditOwnershipEmailFallback(t *testing.T) {
	legacy := review("", "Owner@X.com", "legacy", 4)
	list := models.ReviewList{legacy}

	_, err := Edit(list, Identity{UserID: "u9", Email: "other@x.com"}, 0, edit("nope", 3, "d"))
	assert.ErrorIs(t, err, ErrNotOwner)

	out, err := Edit(list, Identity{UserID: "u9", Email: "owner@x.com"}, 0, edit("mine", 3, "d"))
	assert.NoError(t, err)
	assert.Equal(t, "mine", out[0].ReviewText)
}

func TestEditRejectsWrongOwnerAndBadIndex(t *testing.T) {
	list := models.ReviewList{review("u1", "a@x.com", "text", 4)}

	_, err := Edit(list, Identity{UserID: "u2"}, 0, edit("x", 4, "d"))
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = Edit(list, Identity{UserID: "u1"}, 5, edit("x", 4, "d"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSplices(t *testing.T) {
	list := models.ReviewList{
		review("u1", "a@x.com", "one", 4),
		review("u2", "b@x.com", "two", 3),
		review("u3", "c@x.com", "three", 5),
	}

	out, err := Delete(list, Identity{UserID: "u2"}, 1)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "one", out[0].ReviewText)
	assert.Equal(t, "three", out[1].ReviewText)

	_, err = Delete(list, Identity{UserID: "u9"}, 0)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestToggleLikeAddsAndRemoves(t *testing.T) {
	list := models.ReviewList{review("u1", "a@x.com", "text", 4)}

	liked, err := ToggleLike(list, Identity{UserID: "u2"}, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"u2"}, liked[0].Likes)

	unliked, err := ToggleLike(liked, Identity{UserID: "u2"}, 0)
	assert.NoError(t, err)
	assert.Empty(t, unliked[0].Likes)
}

func TestToggleLikeCollapsesDuplicates(t *testing.T) {
	list := models.ReviewList{review("u1", "a@x.com", "text", 4)}
	list[0].Likes = []string{"u2", "u3", "u2"}

	out, err := ToggleLike(list, Identity{UserID: "u2"}, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"u3"}, out[0].Likes)
}

func TestToggleLikeEmailKeyIsLowercased(t *testing.T) {
	list := models.ReviewList{review("u1", "a@x.com", "text", 4)}

	out, err := ToggleLike(list, Identity{Email: "Guest@X.com"}, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"guest@x.com"}, out[0].Likes)
}

func TestToggleLikeRequiresIdentity(t *testing.T) {
	list := models.ReviewList{review("u1", "a@x.com", "text", 4)}

	_, err := ToggleLike(list, Identity{}, 0)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDistribution(t *testing.T) {
	list := models.ReviewList{
		review("u1", "", "a", 4),
		review("u2", "", "b", 4),
		review("u3", "", "c", 4.5),
		review("u4", "", "d", 1),
	}

	dist := Distribution(list)
	assert.Equal(t, models.RatingMap{"4": 2, "4.5": 1, "1": 1}, dist)
	assert.Equal(t, models.RatingMap{}, Distribution(nil))
}

func TestAverage(t *testing.T) {
	list := models.ReviewList{
		review("u1", "", "a", 4),
		review("u2", "", "b", 5),
	}
	assert.Equal(t, 4.5, Average(list))
	assert.Equal(t, 0.0, Average(nil))
}
