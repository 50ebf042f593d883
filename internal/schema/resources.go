// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package schema

import "regexp"

// Shared value constraints. Every content image reference must point below
// /images/ and carry a known raster extension; years are kept inside the
// range the site actually renders.
var (
	imagePathRe = regexp.MustCompile(`^(?i)/images/[a-zA-Z0-9_\-/\.\s]+\.(jpg|jpeg|png|gif|webp)$`)
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlRe       = regexp.MustCompile(`^https?://\S+$`)
	phoneRe     = regexp.MustCompile(`^[+]?[1-9][\d\s\-()]{0,20}$`)
	filenameRe  = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
)

func ptr(v float64) *float64 { return &v }

func requiredString(name string) Field {
	return Field{Name: name, Required: true, Type: TypeString, MinLen: 1, MaxLen: 1000}
}

func optionalString(name string) Field {
	return Field{Name: name, Type: TypeString, MaxLen: 1000, AllowEmpty: true, Default: ""}
}

func imagePath(name string, required bool) Field {
	return Field{
		Name:       name,
		Required:   required,
		Type:       TypeString,
		AllowEmpty: true,
		Pattern:    imagePathRe,
		PatternMsg: `"` + name + `" must be an /images/ path with a jpg, jpeg, png, gif or webp extension`,
	}
}

func email(name string) Field {
	return Field{
		Name:       name,
		Required:   true,
		Type:       TypeString,
		MaxLen:     255,
		Pattern:    emailRe,
		PatternMsg: `"` + name + `" must be a valid email address`,
	}
}

func urlField(name string) Field {
	return Field{
		Name:       name,
		Type:       TypeString,
		MaxLen:     2000,
		Pattern:    urlRe,
		PatternMsg: `"` + name + `" must be a valid http or https URL`,
	}
}

func year(name string, required bool) Field {
	return Field{Name: name, Required: required, Type: TypeInt, Min: ptr(1900), Max: ptr(2030)}
}

func idField() Field {
	return Field{Name: "id", Type: TypeInt, Min: ptr(1)}
}

func orderField() Field {
	return Field{Name: "order", Type: TypeInt, Min: ptr(0), Default: int64(0)}
}

func number(name string, min, max, def float64) Field {
	return Field{Name: name, Type: TypeFloat, Min: ptr(min), Max: ptr(max), Default: def}
}

// transformObject matches the image transform block shared across banners.
func transformObject(name string, required bool) Field {
	return Field{
		Name:     name,
		Required: required,
		Type:     TypeObject,
		Schema: &Object{Fields: []Field{
			number("scale", 0.1, 5, 1),
			number("translateX", -200, 200, 0),
			number("translateY", -200, 200, 0),
			{Name: "flip", Type: TypeBool, Default: false},
		}},
	}
}

func positionObject(name string, required bool) Field {
	return Field{
		Name:     name,
		Required: required,
		Type:     TypeObject,
		Schema: &Object{Fields: []Field{
			{Name: "top", Type: TypeString, MaxLen: 50},
			{Name: "bottom", Type: TypeString, MaxLen: 50},
			{Name: "left", Type: TypeString, MaxLen: 50},
			{Name: "right", Type: TypeString, MaxLen: 50},
		}},
	}
}

// Hero is the landing page document. It is the strictest schema: any
// top-level field outside the declared set is rejected.
var Hero = &Object{Fields: []Field{
	idField(),
	requiredString("title"),
	optionalString("subtitle"),
	requiredString("atelierTitle"),
	requiredString("atelierDescription"),
	{Name: "banner", Type: TypeObject, Schema: &Object{AllowUnknown: true, Fields: []Field{
		{Name: "logoSize", Type: TypeObject, Schema: &Object{Fields: []Field{
			number("scale", 0.1, 5, 1),
			{Name: "unit", Type: TypeString, MaxLen: 10, Default: "rem"},
		}}},
		{Name: "titleSize", Type: TypeObject, Schema: &Object{Fields: []Field{
			number("scale", 0.1, 5, 1),
			{Name: "unit", Type: TypeString, MaxLen: 10, Default: "rem"},
		}}},
	}}},
	{Name: "backgroundImages", Type: TypeArray, MaxItems: 10, Items: &Field{
		Name: "backgroundImages", Type: TypeObject,
		Schema: &Object{AllowUnknown: true, Fields: []Field{
			{Name: "image", Required: true, Type: TypeString},
			requiredString("alt"),
			{Name: "transform", Type: TypeObject, Schema: &Object{Fields: []Field{
				number("scale", 0.1, 5, 1),
				number("translateX", -500, 500, 0),
				number("translateY", -500, 500, 0),
				{Name: "flip", Type: TypeBool, Default: false},
			}}},
		}},
	}},
	{Name: "polaroids", Type: TypeArray, MaxItems: 10, Items: &Field{
		Name: "polaroids", Type: TypeObject,
		Schema: &Object{AllowUnknown: true, Fields: []Field{
			{Name: "image", Required: true, Type: TypeString},
			requiredString("alt"),
			number("rotation", -45, 45, 0),
			{Name: "position", Type: TypeObject},
		}},
	}},
	{Name: "bannerHeight", Type: TypeObject, Schema: &Object{Fields: []Field{
		number("min", 100, 2000, 400),
		number("preferred", 10, 200, 45),
		number("max", 200, 3000, 800),
	}}},
	// Stamped on every write; accepted back so a fetched document can be
	// resubmitted unchanged.
	{Name: "createdAt", Type: TypeString},
	{Name: "updatedAt", Type: TypeString},
}}

var workCategories = []string{"EDITORIAL", "FILM & TV", "THEATRE", "CONCERT", "MUSIC VIDEO", "LIVE"}

// WorkProject validates a single portfolio entry, both inside the full
// document and on its own for item-level writes.
var WorkProject = &Object{AllowUnknown: true, Fields: []Field{
	idField(),
	requiredString("title"),
	requiredString("client"),
	{Name: "category", Required: true, Type: TypeString, Enum: workCategories},
	year("year", true),
	imagePath("image", true),
	optionalString("alt"),
	optionalString("description"),
	{Name: "featured", Type: TypeBool, Default: false},
	orderField(),
}}

var Work = &Object{Fields: []Field{
	{Name: "banner", Required: true, Type: TypeObject, Schema: &Object{AllowUnknown: true, Fields: []Field{
		requiredString("title"),
		optionalString("subtitle"),
		imagePath("desktopImage", true),
		imagePath("mobileImage", true),
		transformObject("transform", true),
	}}},
	{Name: "sectionBanners", Type: TypeArray, MaxItems: 10, Default: []any{}, Items: &Field{
		Name: "sectionBanners", Type: TypeObject,
		Schema: &Object{AllowUnknown: true, Fields: []Field{
			{Name: "category", Required: true, Type: TypeString, Enum: workCategories},
			imagePath("image", true),
			transformObject("transform", true),
		}},
	}},
	{Name: "projects", Required: true, Type: TypeArray, MaxItems: 50, Items: &Field{
		Name: "projects", Type: TypeObject, Schema: WorkProject,
	}},
	{Name: "createdAt", Type: TypeString},
	{Name: "updatedAt", Type: TypeString},
}}

// ProcessStep validates one step of the process page.
var ProcessStep = &Object{AllowUnknown: true, Fields: []Field{
	idField(),
	requiredString("title"),
	requiredString("description"),
	imagePath("image", true),
	requiredString("alt"),
	{Name: "alignment", Required: true, Type: TypeString, Enum: []string{"left", "right"}},
	orderField(),
}}

var Process = &Object{Fields: []Field{
	{Name: "banner", Required: true, Type: TypeObject, Schema: &Object{AllowUnknown: true, Fields: []Field{
		requiredString("title"),
		optionalString("subtitle"),
		imagePath("desktopImage", true),
		imagePath("mobileImage", true),
		transformObject("transform", true),
		number("circleScale", 0.5, 2, 1),
		{Name: "headingScale", Type: TypeObject, Schema: &Object{Fields: []Field{
			number("mobile", 0.5, 2, 1),
			number("desktop", 0.5, 2, 1),
		}}},
	}}},
	{Name: "teamCircles", Type: TypeObject, Schema: &Object{Fields: []Field{
		number("size", 0.5, 3, 1),
		number("strokeWidth", 1, 10, 2),
		number("gap", 0, 50, 10),
		positionObject("position", false),
	}}},
	{Name: "processSteps", Required: true, Type: TypeArray, MaxItems: 20, Items: &Field{
		Name: "processSteps", Type: TypeObject, Schema: ProcessStep,
	}},
	{Name: "createdAt", Type: TypeString},
	{Name: "updatedAt", Type: TypeString},
}}

// storyItem is one draggable element pinned inside a story circle. Its
// content shape depends on the declared type.
var storyItem = &Object{AllowUnknown: true, Fields: []Field{
	idField(),
	{Name: "type", Required: true, Type: TypeString, Enum: []string{"polaroid", "text", "button"}},
	{Name: "content", Required: true, Type: TypeObject, Switch: &Switch{
		On: "type",
		Cases: map[string]*Object{
			"polaroid": {AllowUnknown: true, Fields: []Field{
				imagePath("image", true),
				requiredString("alt"),
				year("year", false),
			}},
			"text": {AllowUnknown: true, Fields: []Field{
				requiredString("content"),
				{Name: "font", Type: TypeString, MinLen: 1, MaxLen: 1000, Default: "default"},
				number("rotation", -45, 45, 0),
				number("fontSize", 10, 72, 16),
			}},
			"button": {AllowUnknown: true, Fields: []Field{
				requiredString("text"),
				requiredString("action"),
				urlField("href"),
			}},
		},
	}},
	{Name: "position", Required: true, Type: TypeObject, Schema: &Object{AllowUnknown: true, Fields: []Field{
		positionObject("desktop", true),
		positionObject("mobile", true),
		transformObject("transform", false),
	}}},
	{Name: "rotation", Type: TypeObject, Schema: &Object{Fields: []Field{
		number("desktop", -180, 180, 0),
		number("mobile", -180, 180, 0),
	}}},
	{Name: "fontSize", Type: TypeObject, Schema: &Object{Fields: []Field{
		requiredString("desktop"),
		requiredString("mobile"),
	}}},
	{Name: "visibility", Type: TypeObject, Schema: &Object{Fields: []Field{
		{Name: "desktop", Type: TypeBool, Default: true},
		{Name: "mobile", Type: TypeBool, Default: true},
	}}},
}}

var dimensionsObject = &Object{Fields: []Field{
	requiredString("width"),
	requiredString("height"),
}}

var storyCircle = &Object{AllowUnknown: true, Fields: []Field{
	idField(),
	requiredString("name"),
	{Name: "type", Required: true, Type: TypeString, Enum: []string{"simple", "dashed_rotating", "mixed"}},
	{Name: "position", Required: true, Type: TypeObject, Schema: &Object{Fields: []Field{
		positionObject("desktop", true),
		positionObject("mobile", true),
	}}},
	{Name: "size", Required: true, Type: TypeObject, Schema: &Object{Fields: []Field{
		{Name: "desktop", Required: true, Type: TypeObject, Schema: dimensionsObject},
		{Name: "mobile", Required: true, Type: TypeObject, Schema: dimensionsObject},
	}}},
	{Name: "content", Required: true, Type: TypeObject, Schema: &Object{Fields: []Field{
		requiredString("title"),
		optionalString("description"),
	}}},
	{Name: "items", Required: true, Type: TypeArray, MaxItems: 10, Items: &Field{
		Name: "items", Type: TypeObject, Schema: storyItem,
	}},
}}

var Story = &Object{Fields: []Field{
	idField(),
	{Name: "circles", Required: true, Type: TypeArray, MaxItems: 20, Items: &Field{
		Name: "circles", Type: TypeObject, Schema: storyCircle,
	}},
	{Name: "createdAt", Type: TypeString},
	{Name: "updatedAt", Type: TypeString},
}}

// location is reused by both the locations page and the contact page.
var location = &Object{AllowUnknown: true, Fields: []Field{
	idField(),
	requiredString("name"),
	requiredString("address"),
	imagePath("image", true),
	requiredString("alt"),
	urlField("googleMapsUrl"),
	{Name: "variant", Type: TypeString, Enum: []string{"left", "right"}, Default: "left"},
	orderField(),
}}

var Locations = &Object{Fields: []Field{
	{Name: "banner", Required: true, Type: TypeObject, Schema: &Object{AllowUnknown: true, Fields: []Field{
		requiredString("title"),
		{Name: "animationSettings", Type: TypeObject, Schema: &Object{Fields: []Field{
			number("delay", 0, 5000, 0),
			number("duration", 100, 10000, 1000),
			{Name: "circleCount", Type: TypeInt, Min: ptr(1), Max: ptr(20), Default: int64(3)},
		}}},
	}}},
	{Name: "locations", Required: true, Type: TypeArray, MaxItems: 10, Items: &Field{
		Name: "locations", Type: TypeObject, Schema: location,
	}},
	{Name: "createdAt", Type: TypeString},
	{Name: "updatedAt", Type: TypeString},
}}

var Contact = &Object{Fields: []Field{
	idField(),
	{Name: "emails", Required: true, Type: TypeObject, Schema: &Object{Fields: []Field{
		email("brooklyn"),
		email("beverlyHills"),
		email("press"),
	}}},
	{
		Name: "phone", Required: true, Type: TypeString,
		Pattern:    phoneRe,
		PatternMsg: `"phone" must be a valid phone number`,
	},
	{Name: "locations", Type: TypeArray, MaxItems: 10, Default: []any{}, Items: &Field{
		Name: "locations", Type: TypeObject, Schema: location,
	}},
	{Name: "createdAt", Type: TypeString},
	{Name: "updatedAt", Type: TypeString},
}}

// FAQItem validates one question/answer pair.
var FAQItem = &Object{AllowUnknown: true, Fields: []Field{
	idField(),
	requiredString("question"),
	requiredString("answer"),
	{Name: "category", Type: TypeString, MaxLen: 1000, AllowEmpty: true, Default: "general"},
	orderField(),
}}

var FAQ = &Object{Fields: []Field{
	{Name: "id", Type: TypeInt},
	{Name: "banner", Required: true, Type: TypeObject, Schema: &Object{AllowUnknown: true, Fields: []Field{
		{Name: "backgroundImage", Required: true, Type: TypeObject, Schema: &Object{Fields: []Field{
			imagePath("desktop", true),
			imagePath("mobile", true),
		}}},
		{Name: "height", Required: true, Type: TypeString},
		{Name: "objectPosition", Required: true, Type: TypeString},
		transformObject("transform", true),
	}}},
	{Name: "items", Required: true, Type: TypeArray, MaxItems: 50, Items: &Field{
		Name: "items", Type: TypeObject, Schema: FAQItem,
	}},
	{Name: "createdAt", Type: TypeString},
	{Name: "updatedAt", Type: TypeString},
}}

// Upload validates the metadata of a received multipart file. Extra
// attributes are tolerated since the transport layer attaches its own.
func Upload(allowedTypes []string, maxSize int64) *Object {
	return &Object{AllowUnknown: true, Fields: []Field{
		{Name: "mimetype", Required: true, Type: TypeString, Enum: allowedTypes},
		{Name: "size", Required: true, Type: TypeInt, Max: ptr(float64(maxSize))},
		{
			Name: "filename", Required: true, Type: TypeString,
			Pattern:    filenameRe,
			PatternMsg: `"filename" may only contain letters, digits, dot, dash and underscore`,
		},
	}}
}
