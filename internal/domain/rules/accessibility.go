package rules

import (
	"fmt"

	"github.com/lightfix/lightfix/internal/domain"
)

func colorContrast(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Fix insufficient color contrast",
		Priority:    domain.PriorityHigh,
		Impact:      "Text becomes readable for low-vision users",
		Description: "Text must reach a 4.5:1 contrast ratio against its background (3:1 for large text). Low-contrast text is unreadable in sunlight and for many users all the time.",
		Diagnosis:   affectedElements(audit, "element(s) fall below the contrast threshold"),
		Fixes: []domain.Snippet{
			{
				Type:  "css",
				Title: "Darken low-contrast text",
				Code:  "/* 4.5:1 against white */\n.muted {\n  color: #595959; /* was #999999 (2.8:1) */\n}",
			},
		},
	}
}

func headingOrder(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Fix heading order",
		Priority:    domain.PriorityMedium,
		Impact:      "Screen-reader users can navigate by document outline",
		Description: "Headings must descend one level at a time. Skipping from <h1> to <h4> breaks the outline assistive technology builds. Style size with CSS, not heading level.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Descend levels in order",
				Code: "<h1>Page title</h1>\n" +
					"<h2>Section</h2>\n" +
					"<h3 class=\"small-heading\">Subsection styled small via CSS</h3>",
			},
		},
	}
}

func imageAlt(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Add alt text to images",
		Priority:    domain.PriorityHigh,
		Impact:      "Images become meaningful to screen-reader users",
		Description: "Every <img> needs an alt attribute: descriptive text for content images, empty for purely decorative ones so screen readers skip them.",
		Diagnosis:   affectedElements(audit, "image(s) lack alt text"),
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Content vs decorative images",
				Code: "<img src=\"/chart.png\" alt=\"Revenue grew 40% between 2024 and 2026\">\n" +
					"<img src=\"/divider.svg\" alt=\"\">",
			},
		},
	}
}

func label(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Label form controls",
		Priority:    domain.PriorityHigh,
		Impact:      "Form fields get announced with their purpose",
		Description: "Inputs without an associated label are announced as just 'edit text'. Associate a visible <label> via for/id, or aria-label when a visible label is impossible.",
		Diagnosis:   affectedElements(audit, "form control(s) have no label"),
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Associate labels explicitly",
				Code: "<label for=\"email\">Email address</label>\n" +
					"<input id=\"email\" type=\"email\" autocomplete=\"email\">",
			},
		},
	}
}

func buttonName(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Give buttons accessible names",
		Priority:    domain.PriorityHigh,
		Impact:      "Icon buttons become operable by assistive technology",
		Description: "A button whose only content is an icon has no accessible name. Add visually-hidden text or aria-label so its purpose is announced.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Name icon-only buttons",
				Code:  "<button aria-label=\"Close dialog\">\n  <svg aria-hidden=\"true\">...</svg>\n</button>",
			},
		},
	}
}

func linkName(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Give links discernible text",
		Priority:    domain.PriorityMedium,
		Impact:      "Links make sense when read out of context",
		Description: "Links reading 'click here' or wrapping only an image convey nothing in a screen reader's link list. The link text should describe the destination.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Describe the destination",
				Code: "<!-- before --> <a href=\"/report.pdf\">click here</a>\n" +
					"<!-- after  --> <a href=\"/report.pdf\">Download the 2026 annual report (PDF)</a>",
			},
		},
	}
}

// affectedElements counts details items for the diagnosis line, or
// returns "" when the audit carries none.
func affectedElements(audit *domain.Audit, suffix string) string {
	if audit.Details == nil || len(audit.Details.Items) == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s.", len(audit.Details.Items), suffix)
}
