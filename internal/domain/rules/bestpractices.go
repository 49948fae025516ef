package rules

import (
	"fmt"
	"strings"

	"github.com/lightfix/lightfix/internal/domain"
)

func errorsInConsole(audit *domain.Audit) domain.Fix {
	fix := domain.Fix{
		Title:       "Clear console errors",
		Priority:    domain.PriorityMedium,
		Impact:      "Real failures stop hiding behind noise",
		Description: "Errors logged during page load usually mean broken resources or unhandled exceptions. Fix them at the source rather than silencing the console.",
		Fixes: []domain.Snippet{
			{
				Type:  "javascript",
				Title: "Surface unhandled promise rejections",
				Code: "window.addEventListener('unhandledrejection', (event) => {\n" +
					"  reportError(event.reason);\n" +
					"});",
			},
		},
	}

	if audit.Details != nil && len(audit.Details.Items) > 0 {
		var msgs []string
		for _, item := range audit.Details.Items {
			if m := item.Str("description"); m != "" {
				msgs = append(msgs, m)
			}
		}
		if len(msgs) > 0 {
			fix.Diagnosis = fmt.Sprintf("%d console error(s), e.g.: %s", len(audit.Details.Items), msgs[0])
		} else {
			fix.Diagnosis = fmt.Sprintf("%d console error(s) during page load.", len(audit.Details.Items))
		}
	}
	return fix
}

func validSourceMaps(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Publish valid source maps",
		Priority:    domain.PriorityLow,
		Impact:      "Production stack traces become debuggable",
		Description: "Large first-party bundles ship without valid source maps, so production errors point into minified code. Generate maps at build time and upload them where your tooling can find them.",
		Fixes: []domain.Snippet{
			{
				Type:  "bash",
				Title: "Emit source maps in the production build",
				Code:  "npx esbuild app.js --minify --sourcemap --outfile=dist/app.js",
			},
		},
	}
}

func bfCache(audit *domain.Audit) domain.Fix {
	fix := domain.Fix{
		Title:       "Restore back/forward cache eligibility",
		Priority:    domain.PriorityMedium,
		Impact:      "Back navigation becomes instant",
		Description: "The page is evicted from the back/forward cache, so navigating back reloads it from scratch. The usual culprits are unload handlers and open connections at navigation time.",
		Fixes: []domain.Snippet{
			{
				Type:  "javascript",
				Title: "Replace unload with pagehide",
				Code: "// 'unload' blocks bfcache in every major browser\n" +
					"window.addEventListener('pagehide', (event) => {\n" +
					"  if (!event.persisted) flushAnalytics();\n" +
					"});",
			},
		},
	}

	if audit.Details != nil && len(audit.Details.Items) > 0 {
		var reasons []string
		for _, item := range audit.Details.Items {
			if r := item.Str("reason"); r != "" {
				reasons = append(reasons, r)
			}
		}
		if len(reasons) > 0 {
			fix.Diagnosis = "Blocked by: " + strings.Join(reasons, "; ") + "."
		}
	}
	return fix
}

func viewport(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Add a viewport meta tag",
		Priority:    domain.PriorityHigh,
		Impact:      "The page renders at device width instead of zoomed-out desktop",
		Description: "Without a viewport tag, mobile browsers render at desktop width and add a 300ms tap delay. One meta tag fixes both.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Standard responsive viewport",
				Code:  "<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">",
			},
		},
	}
}

func httpStatusCode(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Return a successful HTTP status code",
		Priority:    domain.PriorityHigh,
		Impact:      "Search engines index the page instead of dropping it",
		Description: "The page answers with an error status code. Crawlers treat 4xx/5xx responses as non-existent content regardless of the body.",
		Fixes: []domain.Snippet{
			{
				Type:  "bash",
				Title: "Verify the status code",
				Code:  "curl -s -o /dev/null -w '%{http_code}\\n' https://example.com/",
			},
		},
	}
}

func noVulnerableLibraries(audit *domain.Audit) domain.Fix {
	fix := domain.Fix{
		Title:       "Update vulnerable JavaScript libraries",
		Priority:    domain.PriorityHigh,
		Impact:      "Known, published exploits stop applying to your page",
		Description: "Front-end libraries with known CVEs are detectable by anyone and exploited in bulk. Update them; where an update is breaking, patch or replace the dependency.",
		Fixes: []domain.Snippet{
			{
				Type:  "bash",
				Title: "Audit and update dependencies",
				Code:  "npm audit\nnpm audit fix\n# or, for specific packages:\nnpm update lodash jquery",
			},
		},
	}

	if audit.Details != nil && len(audit.Details.Items) > 0 {
		var libs []string
		for _, item := range audit.Details.Items {
			if v := item.Str("detectedLib"); v != "" {
				libs = append(libs, v)
			}
		}
		if len(libs) > 0 {
			fix.Diagnosis = "Vulnerable: " + strings.Join(libs, ", ") + "."
		}
	}
	return fix
}
