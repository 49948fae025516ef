package rules

import "github.com/lightfix/lightfix/internal/domain"

func metaDescription(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Add a meta description",
		Priority:    domain.PriorityMedium,
		Impact:      "Search results show your copy instead of scraped page text",
		Description: "Without a meta description, search engines pick an arbitrary snippet from the page. Write 50-160 characters summarizing what the page offers.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Describe the page in <head>",
				Code:  "<meta name=\"description\"\n      content=\"Concise summary of what this page offers, 50-160 characters.\">",
			},
		},
	}
}

func canonical(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Fix the canonical link",
		Priority:    domain.PriorityLow,
		Impact:      "Duplicate URLs stop splitting ranking signals",
		Description: "The canonical link is missing, relative, or points at the wrong document. It must be a single absolute URL naming the preferred version of this page.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Declare one absolute canonical URL",
				Code:  "<link rel=\"canonical\" href=\"https://example.com/products/widget\">",
			},
		},
	}
}

func structuredData(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Validate structured data",
		Priority:    domain.PriorityLow,
		Impact:      "Eligibility for rich results in search",
		Description: "Structured data on the page does not validate. Invalid JSON-LD is ignored entirely, so the page loses rich-result eligibility silently.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Minimal valid JSON-LD",
				Code: "<script type=\"application/ld+json\">\n" +
					"{\n" +
					"  \"@context\": \"https://schema.org\",\n" +
					"  \"@type\": \"Article\",\n" +
					"  \"headline\": \"Article title\",\n" +
					"  \"datePublished\": \"2026-08-01\"\n" +
					"}\n" +
					"</script>",
			},
			{
				Type:  "bash",
				Title: "Validate before deploying",
				Code:  "npx structured-data-testing-tool --url https://example.com/",
			},
		},
	}
}
