package model

import (
	"fmt"

	"propmedia/internal/domain/mediaerr"
)

// MediaCollection is the ordered media of one parent record. Order is
// display priority only; cover selection is independent of it.
//
// Invariant after every mutation: at most one item has IsCover set, that
// item is an image, and when at least one image exists (and promotion has
// not been explicitly suppressed on Add) exactly one image is the cover.
//
// Mutations are synchronous and in-memory; persisting the result is the
// caller's separate step. Callers serialize mutations per parent record.
type MediaCollection struct {
	ParentID string      `bson:"_id" json:"parent_id"`
	Items    []MediaItem `bson:"items" json:"items"`
}

func NewCollection(parentID string) *MediaCollection {
	return &MediaCollection{ParentID: parentID}
}

// Cover returns the current cover image, or nil.
func (c *MediaCollection) Cover() *MediaItem {
	for i := range c.Items {
		if c.Items[i].IsCover {
			return &c.Items[i]
		}
	}

	return nil
}

func (c *MediaCollection) Find(id string) *MediaItem {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}

	return nil
}

func (c *MediaCollection) imageCount() int {
	n := 0
	for i := range c.Items {
		if c.Items[i].Type == MediaTypeImage {
			n++
		}
	}

	return n
}

// Add appends item. When autoPromote is set and this is the first image of
// the collection, the item becomes the cover; otherwise cover state is
// untouched.
func (c *MediaCollection) Add(item MediaItem, autoPromote bool) {
	if autoPromote && item.Type == MediaTypeImage && c.imageCount() == 0 {
		item.IsCover = true
	} else {
		item.IsCover = false
	}

	c.Items = append(c.Items, item)
}

// Remove deletes the item with the given ID and returns it. If the removed
// item was the cover, the first remaining image by display order is
// promoted and returned as newCover; with no images left the cover is
// cleared and newCover is nil.
func (c *MediaCollection) Remove(id string) (removed MediaItem, newCover *MediaItem, err error) {
	idx := -1
	for i := range c.Items {
		if c.Items[i].ID == id {
			idx = i

			break
		}
	}
	if idx < 0 {
		return MediaItem{}, nil, mediaerr.ErrMediaNotFound
	}

	removed = c.Items[idx]
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)

	if !removed.IsCover {
		return removed, nil, nil
	}

	for i := range c.Items {
		if c.Items[i].Type == MediaTypeImage {
			c.Items[i].IsCover = true

			return removed, &c.Items[i], nil
		}
	}

	return removed, nil, nil
}

// Reorder permutes display order to match ids, which must be a permutation
// of the current item IDs. Cover assignment is not touched.
func (c *MediaCollection) Reorder(ids []string) error {
	if len(ids) != len(c.Items) {
		return fmt.Errorf("%w: order lists %d items, collection has %d",
			mediaerr.ErrInvariantViolation, len(ids), len(c.Items))
	}

	byID := make(map[string]MediaItem, len(c.Items))
	for _, item := range c.Items {
		byID[item.ID] = item
	}

	reordered := make([]MediaItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown media id %q in order", mediaerr.ErrInvariantViolation, id)
		}
		delete(byID, id)
		reordered = append(reordered, item)
	}

	c.Items = reordered

	return nil
}

// SetCover promotes the target image and demotes all other items. Videos
// are rejected before any mutation occurs.
func (c *MediaCollection) SetCover(id string) error {
	target := c.Find(id)
	if target == nil {
		return mediaerr.ErrMediaNotFound
	}
	if target.Type != MediaTypeImage {
		return fmt.Errorf("%w: only images can be the cover", mediaerr.ErrInvariantViolation)
	}

	for i := range c.Items {
		c.Items[i].IsCover = c.Items[i].ID == id
	}

	return nil
}
