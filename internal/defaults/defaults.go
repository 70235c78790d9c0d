// Package defaults holds the content served when no database is configured
// and used to seed an empty database.
package defaults

import (
	"github.com/growfastwithus/growfast/internal/db/models"
)

// Site setting keys read by the marketing pages.
const (
	KeySiteName        = "site_name"
	KeyHeroTitle       = "hero_title"
	KeyHeroSubtitle    = "hero_subtitle"
	KeyCTAText         = "cta_text"
	KeyContactEmail    = "contact_email"
	KeyPrimaryColor    = "primary_color"
	KeySecondaryColor  = "secondary_color"
	KeyAccentColor     = "accent_color"
	KeyShowReviews     = "show_reviews"
	KeySocialLinks     = "social_links"
	KeyCalendlyURL     = "calendly_url"
	KeyFooterCopyright = "footer_copyright"
)

func setting(key, value, typ, category string) models.SiteSetting {
	return models.SiteSetting{Key: key, Value: value, Type: typ, Category: category}
}

// Settings returns the default site settings.
func Settings() []models.SiteSetting {
	return []models.SiteSetting{
		setting(KeySiteName, "GrowFastWithUs", models.SettingTypeText, models.SettingCategoryGeneral),
		setting(KeyHeroTitle, "Automate the busywork. Grow faster.", models.SettingTypeText, models.SettingCategoryGeneral),
		setting(KeyHeroSubtitle,
			"We build automations that give small teams back 20+ hours every week.",
			models.SettingTypeText, models.SettingCategoryGeneral),
		setting(KeyCTAText, "Book a free automation audit", models.SettingTypeText, models.SettingCategoryGeneral),
		setting(KeyContactEmail, "hello@growfastwithus.com", models.SettingTypeText, models.SettingCategoryGeneral),
		setting(KeyCalendlyURL, "https://calendly.com/growfastwithus/audit", models.SettingTypeURL, models.SettingCategoryGeneral),
		setting(KeyFooterCopyright, "GrowFastWithUs. All rights reserved.", models.SettingTypeText, models.SettingCategoryGeneral),
		setting(KeySocialLinks,
			`{"linkedin":"https://www.linkedin.com/company/growfastwithus","x":"https://x.com/growfastwithus"}`,
			models.SettingTypeJSON, models.SettingCategoryGeneral),
		setting(KeyShowReviews, "true", models.SettingTypeBoolean, models.SettingCategoryGeneral),
		setting(KeyPrimaryColor, "#ff6b35", models.SettingTypeColor, models.SettingCategoryTheme),
		setting(KeySecondaryColor, "#1e293b", models.SettingTypeColor, models.SettingCategoryTheme),
		setting(KeyAccentColor, "#f7c59f", models.SettingTypeColor, models.SettingCategoryTheme),
	}
}

// SettingsByCategory filters Settings by category, all when category is empty.
func SettingsByCategory(category string) []models.SiteSetting {
	all := Settings()
	if category == "" {
		return all
	}

	out := make([]models.SiteSetting, 0, len(all))

	for _, s := range all {
		if s.Category == category {
			out = append(out, s)
		}
	}

	return out
}

// SettingValues returns Settings as a key to value map.
func SettingValues() map[string]string {
	out := map[string]string{}
	for _, s := range Settings() {
		out[s.Key] = s.Value
	}

	return out
}

// Templates returns the default automation catalog.
func Templates() []models.Template {
	templates := []models.Template{
		{
			Title:       "Lead Capture to CRM",
			Description: "Route every website, ad and form lead into your CRM with enrichment and instant follow up.",
			Price:       "$497",
			Category:    "Sales",
			Icon:        "target",
			Features:    []string{"Form and ad integrations", "Lead enrichment", "Instant email follow up", "Slack alerts"},
			Popular:     true,
		},
		{
			Title:       "Invoice and Payment Reminders",
			Description: "Create invoices from closed deals and chase late payments automatically.",
			Price:       "$397",
			Category:    "Finance",
			Icon:        "receipt",
			Features:    []string{"Invoice generation", "Reminder sequences", "Payment reconciliation"},
			Popular:     true,
		},
		{
			Title:       "Client Onboarding",
			Description: "Contracts, welcome emails, folders and kickoff scheduling triggered by one signed deal.",
			Price:       "$597",
			Category:    "Operations",
			Icon:        "rocket",
			Features:    []string{"E-signature trigger", "Shared folder setup", "Kickoff booking", "Task templates"},
			Popular:     true,
		},
		{
			Title:       "Social Media Scheduler",
			Description: "Turn one content calendar into scheduled posts across every channel.",
			Price:       "$297",
			Category:    "Marketing",
			Icon:        "megaphone",
			Features:    []string{"Calendar sync", "Multi channel posting", "Weekly report"},
		},
		{
			Title:       "Support Ticket Triage",
			Description: "Classify, prioritise and route incoming support email to the right person.",
			Price:       "$447",
			Category:    "Support",
			Icon:        "life-buoy",
			Features:    []string{"Inbox monitoring", "AI classification", "SLA reminders"},
		},
		{
			Title:       "Weekly KPI Dashboard",
			Description: "Collect numbers from your tools every Monday and send one clear report.",
			Price:       "$347",
			Category:    "Operations",
			Icon:        "bar-chart",
			Features:    []string{"Spreadsheet and CRM sources", "Automatic charts", "Email and Slack delivery"},
		},
	}

	for i := range templates {
		templates[i].ID = uint64(i + 1) //nolint:gosec
	}

	return templates
}

// TemplatesByCategory filters Templates like the database listing.
func TemplatesByCategory(category string) []models.Template {
	out := []models.Template{}

	for _, t := range Templates() {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}

	return out
}

// Template returns the default template with id.
func Template(id uint64) (models.Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}

	return models.Template{}, false
}

// Reviews returns the default testimonials.
func Reviews() []models.Review {
	return []models.Review{
		{
			ID:       1,
			Name:     "Sarah Mitchell",
			Company:  "Brightline Dental",
			Position: "Practice Manager",
			Rating:   5,
			Content:  "Appointment reminders and follow ups now run themselves. We got back a full day every week.",
			IsActive: true,
		},
		{
			ID:       2,
			Name:     "James Carter",
			Company:  "Carter & Co Accounting",
			Position: "Founder",
			Rating:   5,
			Content:  "Invoices go out the moment a job closes and late payments dropped by half.",
			IsActive: true,
		},
		{
			ID:       3,
			Name:     "Priya Nair",
			Company:  "Nair Interiors",
			Position: "Owner",
			Rating:   4,
			Content:  "Our onboarding used to take a week of emails. Now clients are set up the same afternoon.",
			IsActive: true,
		},
	}
}

// EmailSetting returns the settings shown before any are stored.
func EmailSetting() models.EmailSetting {
	return models.EmailSetting{
		Name:            models.EmailSettingDefault,
		Provider:        "smtp",
		SMTPPort:        587, //nolint:mnd
		FromName:        "GrowFastWithUs",
		NotifyOnContact: true,
		IsActive:        true,
	}
}
