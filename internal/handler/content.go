// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/studiopickens/studio-api/internal/schema"
	"github.com/studiopickens/studio-api/internal/store"
)

// itemSpec describes the collection embedded in a document for resources
// that support item-level writes.
type itemSpec struct {
	key          string
	schema       *schema.Object
	name         string
	orderFromLen bool
}

// resource binds a document kind to its schema and empty shape.
type resource struct {
	kind   string
	label  string
	schema *schema.Object
	empty  func() map[string]any
	item   *itemSpec
}

var resources = map[string]resource{
	store.KindHero: {
		kind:   store.KindHero,
		label:  "Hero",
		schema: schema.Hero,
		empty:  func() map[string]any { return map[string]any{} },
	},
	store.KindWork: {
		kind:   store.KindWork,
		label:  "Work",
		schema: schema.Work,
		empty: func() map[string]any {
			return map[string]any{"banner": map[string]any{}, "projects": []any{}}
		},
		item: &itemSpec{key: "projects", schema: schema.WorkProject, name: "Project"},
	},
	store.KindProcess: {
		kind:   store.KindProcess,
		label:  "Process",
		schema: schema.Process,
		empty:  func() map[string]any { return map[string]any{} },
		item:   &itemSpec{key: "processSteps", schema: schema.ProcessStep, name: "Process step", orderFromLen: true},
	},
	store.KindStory: {
		kind:   store.KindStory,
		label:  "Story",
		schema: schema.Story,
		empty:  func() map[string]any { return map[string]any{} },
	},
	store.KindLocations: {
		kind:   store.KindLocations,
		label:  "Locations",
		schema: schema.Locations,
		empty:  func() map[string]any { return map[string]any{} },
	},
	store.KindContact: {
		kind:   store.KindContact,
		label:  "Contact",
		schema: schema.Contact,
		empty:  func() map[string]any { return map[string]any{} },
	},
	store.KindFAQ: {
		kind:   store.KindFAQ,
		label:  "FAQ",
		schema: schema.FAQ,
		empty: func() map[string]any {
			return map[string]any{"items": []any{}}
		},
		item: &itemSpec{key: "items", schema: schema.FAQItem, name: "FAQ item"},
	},
}

// GetDocument serves the whole document for a kind. A missing file is not
// an error: the site simply has not been configured yet, so the empty shape
// comes back with a 200.
func (h *Handler) GetDocument(res resource) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		doc, err := h.docs.Get(res.kind)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteData(w, res.empty())
				return nil
			}
			return StorageError(fmt.Sprintf("Failed to read %s data", res.kind), err)
		}
		WriteData(w, doc)
		return nil
	}
}

// PutDocument validates and replaces the whole document.
func (h *Handler) PutDocument(res resource, withID bool) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if withID {
			if _, apiErr := idParam(r, "id"); apiErr != nil {
				return apiErr
			}
		}

		payload, apiErr := decodeBody(r)
		if apiErr != nil {
			return apiErr
		}

		sanitized, fieldErrs := res.schema.Validate(payload)
		if len(fieldErrs) > 0 {
			return ValidationError(fieldErrs)
		}

		sanitized["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
		if err := h.docs.Put(res.kind, sanitized); err != nil {
			return putError(res, err)
		}

		slog.Info("document updated", "category", "content", "kind", res.kind)
		WriteMessage(w, res.label+" data updated successfully")
		return nil
	}
}

// AddItem validates a single collection item, assigns the next id, appends
// it and persists the parent document. Work projects and FAQ items start
// from the empty shape when the document does not exist yet; process steps
// require an existing document.
func (h *Handler) AddItem(res resource) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		payload, apiErr := decodeBody(r)
		if apiErr != nil {
			return apiErr
		}

		item, fieldErrs := res.item.schema.Validate(payload)
		if len(fieldErrs) > 0 {
			return ValidationError(fieldErrs)
		}

		doc, err := h.docs.Get(res.kind)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return StorageError(fmt.Sprintf("Failed to read %s data", res.kind), err)
			}
			if res.item.orderFromLen {
				return NotFoundError(res.label + " data not found")
			}
			doc = res.empty()
		}

		collection, _ := doc[res.item.key].([]any)
		item["id"] = nextItemID(collection)
		if res.item.orderFromLen {
			item["order"] = int64(len(collection) + 1)
		}

		doc[res.item.key] = append(collection, item)
		doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

		if err := h.docs.Put(res.kind, doc); err != nil {
			return putError(res, err)
		}

		slog.Info("item added", "category", "content", "kind", res.kind, "id", item["id"])
		WriteData(w, item)
		return nil
	}
}

// UpdateItem replaces one collection item by id, keeping the id stable.
func (h *Handler) UpdateItem(res resource) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, apiErr := idParam(r, "id")
		if apiErr != nil {
			return apiErr
		}

		payload, apiErr := decodeBody(r)
		if apiErr != nil {
			return apiErr
		}

		item, fieldErrs := res.item.schema.Validate(payload)
		if len(fieldErrs) > 0 {
			return ValidationError(fieldErrs)
		}

		doc, err := h.docs.Get(res.kind)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return NotFoundError(res.label + " data not found")
			}
			return StorageError(fmt.Sprintf("Failed to read %s data", res.kind), err)
		}

		collection, _ := doc[res.item.key].([]any)
		index := findItemIndex(collection, id)
		if index < 0 {
			return NotFoundError(res.item.name + " not found")
		}

		item["id"] = id
		collection[index] = item
		doc[res.item.key] = collection
		doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

		if err := h.docs.Put(res.kind, doc); err != nil {
			return putError(res, err)
		}

		slog.Info("item updated", "category", "content", "kind", res.kind, "id", id)
		WriteMessage(w, res.item.name+" updated successfully")
		return nil
	}
}

// DeleteItem removes one collection item by id. Both a missing document and
// a missing id are 404s; the document is left untouched in either case.
func (h *Handler) DeleteItem(res resource) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, apiErr := idParam(r, "id")
		if apiErr != nil {
			return apiErr
		}

		doc, err := h.docs.Get(res.kind)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return NotFoundError(res.label + " data not found")
			}
			return StorageError(fmt.Sprintf("Failed to read %s data", res.kind), err)
		}

		collection, _ := doc[res.item.key].([]any)
		index := findItemIndex(collection, id)
		if index < 0 {
			return NotFoundError(res.item.name + " not found")
		}

		doc[res.item.key] = append(collection[:index], collection[index+1:]...)
		doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

		if err := h.docs.Put(res.kind, doc); err != nil {
			return putError(res, err)
		}

		slog.Info("item deleted", "category", "content", "kind", res.kind, "id", id)
		WriteMessage(w, res.item.name+" deleted successfully")
		return nil
	}
}

// decodeBody reads the request body as a JSON object.
func decodeBody(r *http.Request) (map[string]any, *Error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, NewError(http.StatusBadRequest, CodeValidation, "Request body must be a JSON object")
	}
	return payload, nil
}

// putError classifies a write failure: a value the codec cannot serialize
// is the caller's fault, everything else is a storage failure.
func putError(res resource, err error) *Error {
	if errors.Is(err, store.ErrSerialization) {
		return NewError(http.StatusBadRequest, CodeValidation, "Document cannot be serialized")
	}
	return StorageError(fmt.Sprintf("Failed to write %s data", res.kind), err)
}

// nextItemID returns max(id)+1 over the collection, starting at 1.
// Monotonic per document, unlike wall-clock ids which can collide.
func nextItemID(collection []any) int64 {
	var max int64
	for _, elem := range collection {
		if id, ok := itemID(elem); ok && id > max {
			max = id
		}
	}
	return max + 1
}

// findItemIndex locates a collection item by id, -1 when absent.
func findItemIndex(collection []any, id int64) int {
	for i, elem := range collection {
		if got, ok := itemID(elem); ok && got == id {
			return i
		}
	}
	return -1
}

// itemID reads the numeric id of a collection item. Stored documents come
// back from the decoder with float64 ids; freshly created items carry int64.
func itemID(elem any) (int64, bool) {
	obj, ok := elem.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := obj["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
