package schema

import "testing"

func validHeroPayload() map[string]any {
	return map[string]any{
		"title":              "STUDIO PICKENS",
		"subtitle":           "Custom wigs",
		"atelierTitle":       "THE ATELIER",
		"atelierDescription": "Handmade in Brooklyn",
	}
}

func TestHeroRejectsUnknownField(t *testing.T) {
	payload := validHeroPayload()
	if _, errs := Hero.Validate(payload); len(errs) != 0 {
		t.Fatalf("valid hero payload rejected: %v", errs)
	}

	payload["surprise"] = "nope"
	_, errs := Hero.Validate(payload)
	if len(errs) == 0 {
		t.Fatal("hero payload with an unknown key should be rejected")
	}
	if fieldErrorFor(errs, "surprise") == nil {
		t.Errorf("details should reference the unknown key, got %v", errs)
	}
}

func TestHeroRequiresCoreFields(t *testing.T) {
	payload := validHeroPayload()
	delete(payload, "atelierTitle")

	_, errs := Hero.Validate(payload)
	if fieldErrorFor(errs, "atelierTitle") == nil {
		t.Errorf("missing atelierTitle should be reported, got %v", errs)
	}
}

func TestWorkProjectCategoryEnum(t *testing.T) {
	payload := map[string]any{
		"title":    "Vogue Cover",
		"client":   "Vogue",
		"category": "EDITORIAL",
		"year":     2024.0,
		"image":    "/images/work/vogue.jpg",
	}

	out, errs := WorkProject.Validate(payload)
	if len(errs) != 0 {
		t.Fatalf("valid project rejected: %v", errs)
	}
	if out["featured"] != false {
		t.Errorf("featured should default to false, got %v", out["featured"])
	}
	if out["order"] != int64(0) {
		t.Errorf("order should default to 0, got %v", out["order"])
	}
	if out["alt"] != "" {
		t.Errorf("alt should default to empty, got %v", out["alt"])
	}

	payload["category"] = "WEDDINGS"
	if _, errs := WorkProject.Validate(payload); fieldErrorFor(errs, "category") == nil {
		t.Errorf("category outside the allow-list should fail, got %v", errs)
	}
}

func TestWorkProjectImagePath(t *testing.T) {
	payload := map[string]any{
		"title":    "Show",
		"client":   "Client",
		"category": "THEATRE",
		"year":     2020.0,
		"image":    "https://cdn.example.com/x.jpg",
	}
	if _, errs := WorkProject.Validate(payload); fieldErrorFor(errs, "image") == nil {
		t.Errorf("absolute URL should fail the image path rule, got %v", errs)
	}

	payload["image"] = "/images/work/show.webp"
	if _, errs := WorkProject.Validate(payload); len(errs) != 0 {
		t.Errorf("web-relative image path should pass, got %v", errs)
	}
}

func TestProcessStepAlignment(t *testing.T) {
	payload := map[string]any{
		"title":       "Consultation",
		"description": "First visit",
		"image":       "/images/process/step1.jpg",
		"alt":         "Consultation",
		"alignment":   "center",
	}
	if _, errs := ProcessStep.Validate(payload); fieldErrorFor(errs, "alignment") == nil {
		t.Errorf("alignment outside left/right should fail, got %v", errs)
	}
}

func TestStoryItemContentSwitch(t *testing.T) {
	item := map[string]any{
		"type": "polaroid",
		"content": map[string]any{
			"image": "/images/story/one.jpg",
			"alt":   "First shop",
			"year":  2015.0,
		},
		"position": map[string]any{
			"desktop": map[string]any{"top": "10%"},
			"mobile":  map[string]any{"top": "20%"},
		},
	}

	if _, errs := storyItem.Validate(item); len(errs) != 0 {
		t.Fatalf("polaroid item rejected: %v", errs)
	}

	// Same content against the text variant demands different fields.
	item["type"] = "text"
	_, errs := storyItem.Validate(item)
	if fieldErrorFor(errs, "content.content") == nil {
		t.Errorf("text variant should demand content.content, got %v", errs)
	}
}

func TestFAQItemDefaults(t *testing.T) {
	out, errs := FAQItem.Validate(map[string]any{
		"question": "Do you ship?",
		"answer":   "Worldwide.",
	})
	if len(errs) != 0 {
		t.Fatalf("valid FAQ item rejected: %v", errs)
	}
	if out["category"] != "general" {
		t.Errorf("category should default to general, got %v", out["category"])
	}
}

func TestContactEmails(t *testing.T) {
	payload := map[string]any{
		"emails": map[string]any{
			"brooklyn":     "brooklyn@studiopickens.com",
			"beverlyHills": "bh@studiopickens.com",
			"press":        "not-an-email",
		},
		"phone": "+1 212 555 0100",
	}
	_, errs := Contact.Validate(payload)
	if fieldErrorFor(errs, "emails.press") == nil {
		t.Errorf("invalid email should be reported at emails.press, got %v", errs)
	}
}

func TestUploadSchema(t *testing.T) {
	allowed := []string{"image/jpeg", "image/png"}
	upload := Upload(allowed, 10485760)

	_, errs := upload.Validate(map[string]any{
		"mimetype": "image/jpeg",
		"size":     1024.0,
		"filename": "photo_1.jpg",
		"encoding": "7bit", // transport extras tolerated
	})
	if len(errs) != 0 {
		t.Fatalf("valid upload metadata rejected: %v", errs)
	}

	if _, errs := upload.Validate(map[string]any{
		"mimetype": "application/pdf",
		"size":     1024.0,
		"filename": "doc.pdf",
	}); fieldErrorFor(errs, "mimetype") == nil {
		t.Errorf("disallowed MIME type should fail, got %v", errs)
	}

	if _, errs := upload.Validate(map[string]any{
		"mimetype": "image/png",
		"size":     20971520.0,
		"filename": "big.png",
	}); fieldErrorFor(errs, "size") == nil {
		t.Errorf("oversized file should fail, got %v", errs)
	}

	if _, errs := upload.Validate(map[string]any{
		"mimetype": "image/png",
		"size":     1024.0,
		"filename": "../escape.png",
	}); fieldErrorFor(errs, "filename") == nil {
		t.Errorf("path characters in filename should fail, got %v", errs)
	}
}
