package seed

import (
	"github.com/goliatone/go-editor/contentpath"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/schema"
)

// DefaultContent returns the starter marketing content set used when no
// snapshot exists yet. Every node carries its declared kind so the panel can
// infer controls without a registered schema.
func DefaultContent() map[string]nodes.Node {
	content := map[string]nodes.Node{
		"hero.title": {
			Kind:  schema.KindText,
			Label: "Hero title",
			Value: "Ship your ideas faster",
		},
		"hero.subtitle": {
			Kind:  schema.KindText,
			Label: "Hero subtitle",
			Value: "Everything your team needs to plan, build, and launch in one place.",
		},
		"hero.ctaLabel": {
			Kind:  schema.KindText,
			Label: "Call to action",
			Value: "Start free trial",
		},
		"hero.ctaUrl": {
			Kind:  schema.KindURL,
			Label: "Call to action link",
			Value: "https://example.com/signup",
		},
		"hero.accentColor": {
			Kind:  schema.KindText,
			Label: "Accent color",
			Value: "#ff6600",
		},
		"hero.background": {
			Kind:  schema.KindText,
			Label: "Background",
			Value: "linear-gradient(135deg, #1f2937, #111827)",
		},
		"pricing.headline": {
			Kind:  schema.KindText,
			Label: "Pricing headline",
			Value: "Simple pricing for every team",
		},
		"pricing.monthlyPrice": {
			Kind:  schema.KindNumber,
			Label: "Monthly price",
			Value: float64(29),
		},
		"pricing.annualBilling": {
			Kind:  schema.KindBoolean,
			Label: "Annual billing enabled",
			Value: true,
		},
		"pricing.tier": {
			Kind:  schema.KindSelect,
			Label: "Featured tier",
			Value: "pro",
		},
		"about.body": {
			Kind:  schema.KindRichText,
			Label: "About",
			Value: "## Built by makers\n\nWe started in a garage and never stopped shipping.",
		},
		"careers.body": {
			Kind:  schema.KindRichText,
			Label: "Careers",
			Value: "## Join us\n\nWe hire curious people in every timezone.",
		},
		"download.appStoreUrl": {
			Kind:  schema.KindURL,
			Label: "App Store link",
			Value: "https://apps.example.com/app",
		},
		"footer.contactEmail": {
			Kind:  schema.KindEmail,
			Label: "Contact email",
			Value: "hello@example.com",
		},
	}

	features := []struct {
		title       string
		description string
		icon        string
	}{
		{"Realtime sync", "Edits show up everywhere the moment you make them.", "zap"},
		{"Granular permissions", "Decide who can see, edit, and publish every page.", "lock"},
		{"One-click publish", "Review your draft and push it live when it is ready.", "rocket"},
	}
	for i, feature := range features {
		base := indexedPath("features", i)
		content[base+".title"] = nodes.Node{Kind: schema.KindText, Label: "Feature title", Value: feature.title}
		content[base+".description"] = nodes.Node{Kind: schema.KindText, Label: "Feature description", Value: feature.description}
		content[base+".icon"] = nodes.Node{Kind: schema.KindText, Label: "Feature icon", Value: feature.icon}
	}

	faqs := []struct {
		question string
		answer   string
	}{
		{"Can I cancel anytime?", "Yes, subscriptions are month to month with no lock-in."},
		{"Do you offer a free tier?", "Every plan starts with a 14 day trial, no card required."},
	}
	for i, faq := range faqs {
		base := indexedPath("faq", i)
		content[base+".question"] = nodes.Node{Kind: schema.KindText, Label: "Question", Value: faq.question}
		content[base+".answer"] = nodes.Node{Kind: schema.KindText, Label: "Answer", Value: faq.answer}
	}

	for path, node := range content {
		node.ID = path
		content[path] = node
	}
	return content
}

// DefaultSections returns the section schemas matching the starter content.
// Registering them makes the publish gate meaningful out of the box.
func DefaultSections() []schema.Section {
	maxTitle := 80
	return []schema.Section{
		{
			Name:  "hero",
			Title: "Hero",
			Fields: []schema.Field{
				{Name: "title", Kind: schema.KindText, Label: "Hero title", Required: true, Rules: &schema.Rules{MaxLength: maxTitle}},
				{Name: "subtitle", Kind: schema.KindText, Label: "Hero subtitle"},
				{Name: "ctaLabel", Kind: schema.KindText, Label: "Call to action", Required: true},
				{Name: "ctaUrl", Kind: schema.KindURL, Label: "Call to action link", Required: true},
				{Name: "accentColor", Kind: schema.KindText, Label: "Accent color"},
				{Name: "background", Kind: schema.KindText, Label: "Background"},
			},
		},
		{
			Name:  "pricing",
			Title: "Pricing",
			Fields: []schema.Field{
				{Name: "headline", Kind: schema.KindText, Label: "Pricing headline", Required: true},
				{Name: "monthlyPrice", Kind: schema.KindNumber, Label: "Monthly price", Required: true},
				{Name: "annualBilling", Kind: schema.KindBoolean, Label: "Annual billing enabled"},
				{Name: "tier", Kind: schema.KindSelect, Label: "Featured tier", Options: []schema.Option{
					{Value: "starter", Label: "Starter"},
					{Value: "pro", Label: "Pro"},
					{Value: "enterprise", Label: "Enterprise"},
				}},
			},
		},
		{
			Name:  "footer",
			Title: "Footer",
			Fields: []schema.Field{
				{Name: "contactEmail", Kind: schema.KindEmail, Label: "Contact email", Required: true},
			},
		},
		{
			Name:  "download",
			Title: "Download",
			Fields: []schema.Field{
				{Name: "appStoreUrl", Kind: schema.KindURL, Label: "App Store link"},
			},
		},
	}
}

func indexedPath(arrayPath string, index int) string {
	return contentpath.Item(arrayPath, index)
}
