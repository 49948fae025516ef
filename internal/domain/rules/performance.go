package rules

import (
	"fmt"
	"strings"

	"github.com/lightfix/lightfix/internal/domain"
)

// extensionScheme marks browser-extension resources in audit item
// URLs. Extension code is injected by the user's browser and is not
// actionable for the site owner.
const extensionScheme = "chrome-extension://"

// TTFB diagnosis tiers, checked high to low against numericValue in ms.
func ttfbDiagnosis(ms float64) string {
	switch {
	case ms > 1000:
		return fmt.Sprintf("Your server took %.0fms to respond. This is critically high - aim for under 600ms.", ms)
	case ms > 600:
		return fmt.Sprintf("Your server took %.0fms to respond. This is elevated - aim for under 600ms.", ms)
	case ms > 400:
		return fmt.Sprintf("Your server took %.0fms to respond. This is moderate - there is still room to improve.", ms)
	default:
		return fmt.Sprintf("Your server took %.0fms to respond. This is acceptable, but caching can still shave it further.", ms)
	}
}

func serverResponseTime(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Reduce server response time (TTFB)",
		Priority:    domain.PriorityHigh,
		Impact:      "Every metric downstream of the first byte improves with it",
		Description: "A slow first byte delays everything the browser does afterwards. Cache rendered pages at the edge, keep database queries out of the critical path, and serve static assets from a CDN.",
		Diagnosis:   ttfbDiagnosis(audit.NumericValue),
		Fixes: []domain.Snippet{
			{
				Type:  "text",
				Title: "Cache rendered HTML at the edge",
				Code:  "Cache-Control: public, s-maxage=60, stale-while-revalidate=300",
			},
			{
				Type:  "bash",
				Title: "Measure TTFB in isolation",
				Code:  "curl -o /dev/null -s -w 'ttfb: %{time_starttransfer}s\\n' https://example.com/",
			},
		},
	}
}

// FID diagnosis tiers, checked high to low against numericValue in ms.
func fidDiagnosis(ms float64) string {
	switch {
	case ms > 200:
		return fmt.Sprintf("Max potential first input delay is %.0fms - critical. Long main-thread tasks are blocking input.", ms)
	case ms > 100:
		return fmt.Sprintf("Max potential first input delay is %.0fms - needs improvement. Break up long tasks.", ms)
	case ms > 50:
		return fmt.Sprintf("Max potential first input delay is %.0fms - acceptable, but could be better.", ms)
	default:
		return fmt.Sprintf("Max potential first input delay is %.0fms - good.", ms)
	}
}

func maxPotentialFID(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Reduce main-thread blocking before first input",
		Priority:    domain.PriorityMedium,
		Impact:      "Faster response to the user's first tap or click",
		Description: "Long JavaScript tasks keep the main thread busy when the user first interacts. Split long tasks, defer non-critical scripts, and move heavy work off the main thread.",
		Diagnosis:   fidDiagnosis(audit.NumericValue),
		Fixes: []domain.Snippet{
			{
				Type:  "javascript",
				Title: "Yield to the main thread inside long loops",
				Code: "async function processAll(items) {\n" +
					"  for (const item of items) {\n" +
					"    process(item);\n" +
					"    if (navigator.scheduling?.isInputPending()) {\n" +
					"      await new Promise((r) => setTimeout(r, 0));\n" +
					"    }\n" +
					"  }\n" +
					"}",
			},
		},
	}
}

func unusedJavascript(audit *domain.Audit) domain.Fix {
	var firstParty, extensions []string
	var totalWastedBytes float64

	if audit.Details != nil {
		for _, item := range audit.Details.Items {
			url := item.Str("url")
			// Total waste intentionally includes extension URLs; the
			// actionable file count below does not.
			totalWastedBytes += item.Num("wastedBytes")
			if strings.Contains(url, extensionScheme) {
				extensions = append(extensions, url)
			} else if url != "" {
				firstParty = append(firstParty, url)
			}
		}
	}

	var savingsMs float64
	if audit.Details != nil {
		savingsMs = audit.Details.OverallSavingsMs
	}

	fix := domain.Fix{
		Title:       "Remove unused JavaScript",
		Priority:    domain.PriorityHigh,
		Impact:      fmt.Sprintf("%s of dead code, roughly %s of load time", formatBytes(totalWastedBytes), formatMs(savingsMs)),
		Description: "Shipping code the page never runs costs download, parse, and compile time. Split bundles per route and drop dependencies the page does not use.",
		Diagnosis:   fmt.Sprintf("%d first-party file(s) carry unused JavaScript (%s wasted in total).", len(firstParty), formatBytes(totalWastedBytes)),
	}

	if len(firstParty) > 0 {
		fix.Fixes = append(fix.Fixes, domain.Snippet{
			Type:  "bash",
			Title: "Analyze first-party bundles",
			Code:  "npx source-map-explorer 'dist/**/*.js'\n# worst offenders first:\n# " + strings.Join(firstParty, "\n# "),
		})
		fix.Fixes = append(fix.Fixes, domain.Snippet{
			Type:  "javascript",
			Title: "Split rarely-used code out of the entry bundle",
			Code: "// Before: imported eagerly at the top of the entry\n" +
				"// import { exportToPdf } from './pdf';\n\n" +
				"// After: loaded when the user actually asks for it\n" +
				"button.addEventListener('click', async () => {\n" +
				"  const { exportToPdf } = await import('./pdf');\n" +
				"  exportToPdf(document);\n" +
				"});",
		})
	}

	if len(extensions) > 0 {
		fix.Fixes = append(fix.Fixes, domain.Snippet{
			Type:  "text",
			Title: "Browser extensions (can ignore)",
			Code: "These URLs come from browser extensions, not your site. They inflate the\n" +
				"audit but are outside your control:\n" + strings.Join(extensions, "\n"),
		})
	}

	return fix
}

func speedIndex(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Improve perceived loading speed",
		Priority:    domain.PriorityMedium,
		Impact:      "Content becomes visible sooner",
		Description: "Speed Index measures how quickly content is visually populated. Prioritize above-the-fold content, inline critical CSS, and avoid late layout shifts.",
		Diagnosis:   fmt.Sprintf("Speed Index is %s.", displayOrMs(audit)),
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Inline critical CSS, defer the rest",
				Code: "<style>/* critical above-the-fold rules */</style>\n" +
					"<link rel=\"preload\" href=\"/styles.css\" as=\"style\"\n" +
					"      onload=\"this.onload=null;this.rel='stylesheet'\">",
			},
		},
	}
}

func lcpBreakdown(audit *domain.Audit) domain.Fix {
	fix := domain.Fix{
		Title:       "Speed up Largest Contentful Paint",
		Priority:    domain.PriorityHigh,
		Impact:      "The page's main content appears sooner",
		Description: "The LCP breakdown shows which phase dominates: first byte, resource load delay, resource load time, or render delay. Attack the slowest phase first.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Preload the LCP image and mark it high priority",
				Code: "<link rel=\"preload\" as=\"image\" href=\"/hero.webp\" fetchpriority=\"high\">\n" +
					"<img src=\"/hero.webp\" fetchpriority=\"high\" alt=\"...\">",
			},
		},
	}

	if phases := timingPhases(audit); len(phases) > 0 {
		fix.Diagnosis = "Phase breakdown: " + strings.Join(phases, ", ") + "."
	}
	return fix
}

func documentLatency(audit *domain.Audit) domain.Fix {
	fix := domain.Fix{
		Title:       "Cut document request latency",
		Priority:    domain.PriorityMedium,
		Impact:      "The HTML document arrives sooner, unblocking everything else",
		Description: "The document request should avoid redirects, be served compressed, and come back fast. Each redirect adds a full round trip before anything renders.",
		Fixes: []domain.Snippet{
			{
				Type:  "text",
				Title: "Serve the document compressed",
				Code:  "Content-Encoding: br\nVary: Accept-Encoding",
			},
			{
				Type:  "bash",
				Title: "Check for redirect chains",
				Code:  "curl -sIL -o /dev/null -w '%{url_effective} (%{num_redirects} redirects)\\n' https://example.com",
			},
		},
	}

	if phases := timingPhases(audit); len(phases) > 0 {
		fix.Diagnosis = "Observed: " + strings.Join(phases, ", ") + "."
	}
	return fix
}

func renderBlockingResources(audit *domain.Audit) domain.Fix {
	var savingsMs float64
	var count int
	if audit.Details != nil {
		savingsMs = audit.Details.OverallSavingsMs
		count = len(audit.Details.Items)
	}
	return domain.Fix{
		Title:       "Eliminate render-blocking resources",
		Priority:    domain.PriorityHigh,
		Impact:      fmt.Sprintf("Roughly %s faster first paint", formatMs(savingsMs)),
		Description: "Stylesheets and synchronous scripts in <head> block rendering until downloaded and parsed. Inline what is critical and defer the rest.",
		Diagnosis:   fmt.Sprintf("%d resource(s) block the first paint.", count),
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Defer non-critical scripts",
				Code:  "<script src=\"/app.js\" defer></script>\n<script src=\"/analytics.js\" async></script>",
			},
		},
	}
}

func unminifiedCSS(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Minify CSS",
		Priority:    domain.PriorityMedium,
		Impact:      savingsImpact(audit, "smaller stylesheets"),
		Description: "Whitespace and comments in shipped CSS are pure download overhead. Any bundler or a standalone minifier removes them losslessly.",
		Fixes: []domain.Snippet{
			{
				Type:  "bash",
				Title: "Minify with lightningcss",
				Code:  "npx lightningcss --minify --bundle styles.css -o styles.min.css",
			},
		},
	}
}

func unminifiedJavascript(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Minify JavaScript",
		Priority:    domain.PriorityMedium,
		Impact:      savingsImpact(audit, "smaller scripts"),
		Description: "Unminified JavaScript ships long identifiers, comments, and whitespace to every visitor. Enable minification in the production build.",
		Fixes: []domain.Snippet{
			{
				Type:  "bash",
				Title: "Minify with esbuild",
				Code:  "npx esbuild app.js --minify --outfile=app.min.js",
			},
		},
	}
}

func unusedCSSRules(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Remove unused CSS rules",
		Priority:    domain.PriorityMedium,
		Impact:      savingsImpact(audit, "less CSS to download and parse"),
		Description: "Selectors that match nothing on the page still cost download and style-recalculation time. Purge them against the markup you actually render.",
		Fixes: []domain.Snippet{
			{
				Type:  "javascript",
				Title: "Purge unused selectors at build time",
				Code: "// postcss.config.js\n" +
					"module.exports = {\n" +
					"  plugins: [\n" +
					"    require('@fullhuman/postcss-purgecss')({\n" +
					"      content: ['./src/**/*.html', './src/**/*.jsx'],\n" +
					"    }),\n" +
					"  ],\n" +
					"};",
			},
		},
	}
}

func modernImageFormats(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Serve images in modern formats",
		Priority:    domain.PriorityMedium,
		Impact:      savingsImpact(audit, "smaller image payloads"),
		Description: "WebP and AVIF compress 25-50% better than JPEG and PNG at the same quality. Serve them with a JPEG fallback via <picture>.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Progressive enhancement with <picture>",
				Code: "<picture>\n" +
					"  <source srcset=\"/photo.avif\" type=\"image/avif\">\n" +
					"  <source srcset=\"/photo.webp\" type=\"image/webp\">\n" +
					"  <img src=\"/photo.jpg\" alt=\"...\">\n" +
					"</picture>",
			},
			{
				Type:  "bash",
				Title: "Convert existing assets",
				Code:  "npx sharp-cli --input './images/*.jpg' --output ./images --format webp",
			},
		},
	}
}

func offscreenImages(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Defer offscreen images",
		Priority:    domain.PriorityMedium,
		Impact:      savingsImpact(audit, "bandwidth freed for visible content"),
		Description: "Images below the fold compete with visible content for bandwidth. Native lazy loading defers them until the user scrolls near.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Lazy-load below-the-fold images",
				Code:  "<img src=\"/gallery-12.jpg\" loading=\"lazy\" decoding=\"async\" alt=\"...\">",
			},
		},
	}
}

func usesOptimizedImages(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Compress images further",
		Priority:    domain.PriorityMedium,
		Impact:      savingsImpact(audit, "smaller image payloads"),
		Description: "Several images are served with little or no compression. Re-encode them at a sensible quality setting; visually lossless is usually around quality 80.",
		Fixes: []domain.Snippet{
			{
				Type:  "bash",
				Title: "Re-encode JPEGs at quality 80",
				Code:  "npx sharp-cli --input './images/*.jpg' --output ./optimized --quality 80",
			},
		},
	}
}

func documentTitle(audit *domain.Audit) domain.Fix {
	return domain.Fix{
		Title:       "Add a document title",
		Priority:    domain.PriorityLow,
		Impact:      "Tabs, bookmarks, and search results get a readable name",
		Description: "The page has no <title>, or an empty one. Screen readers announce the title first, and search engines use it as the result headline.",
		Fixes: []domain.Snippet{
			{
				Type:  "html",
				Title: "Set a descriptive title",
				Code:  "<head>\n  <title>Product name - what this page is about</title>\n</head>",
			},
		},
	}
}

// savingsImpact phrases an opportunity audit's savings, falling back to
// a plain phrase when the audit carries no details.
func savingsImpact(audit *domain.Audit, fallback string) string {
	if audit.Details == nil {
		return fallback
	}
	switch {
	case audit.Details.OverallSavingsBytes > 0:
		return fmt.Sprintf("%s saved (%s)", formatBytes(audit.Details.OverallSavingsBytes), fallback)
	case audit.Details.OverallSavingsMs > 0:
		return fmt.Sprintf("%s saved (%s)", formatMs(audit.Details.OverallSavingsMs), fallback)
	default:
		return fallback
	}
}

func displayOrMs(audit *domain.Audit) string {
	if audit.DisplayValue != "" {
		return audit.DisplayValue
	}
	return formatMs(audit.NumericValue)
}
