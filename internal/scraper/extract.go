package scraper

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultEndMarker starts the "other events" section of the agenda page.
const DefaultEndMarker = "<strong>Et toujours</strong>"

// Listing is one agenda block as found on the page
type Listing struct {
	Day         string // "02"
	MonthAbbrev string // "janv.", in the page's locale
	Year        string // "2024"
	Href        string // usually relative to the agenda site
	TitleHTML   string // inner HTML, entities still escaped
	PlaceHTML   string
}

// Trim removes line breaks and drops everything from marker onwards.
func Trim(page, marker string) string {
	page = strings.NewReplacer("\n", "", "\r", "").Replace(page)
	if marker != "" {
		if i := strings.Index(page, marker); i >= 0 {
			page = page[:i]
		}
	}
	return page
}

// blockParts lists the elements a listing block holds, in document order.
var blockParts = []string{"p.day", "p.month", "p.year", "h3 a[href]", "p.place"}

// Extract returns the listings of an already trimmed page. Blocks missing
// any part are skipped.
func Extract(page string) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
		if err != nil {
			return
		}

		doc.Find("div.agenda-content").EachWithBreak(func(_ int, block *goquery.Selection) bool {
			listing, ok := parseBlock(block)
			if !ok {
				return true
			}
			return yield(listing)
		})
	}
}

// parseBlock walks the block's parts in document order and takes the first
// match for each one after the previous part.
func parseBlock(block *goquery.Selection) (Listing, bool) {
	found := make([]*goquery.Selection, 0, len(blockParts))

	block.Find(strings.Join(blockParts, ", ")).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.Is(blockParts[len(found)]) {
			found = append(found, sel)
		}
		return len(found) < len(blockParts)
	})

	if len(found) != len(blockParts) {
		return Listing{}, false
	}

	href, _ := found[3].Attr("href")
	listing := Listing{
		Day:         strings.TrimSpace(found[0].Text()),
		MonthAbbrev: strings.TrimSpace(found[1].Text()),
		Year:        strings.TrimSpace(found[2].Text()),
		Href:        strings.TrimSpace(href),
		TitleHTML:   leadingHTML(found[3]),
		PlaceHTML:   innerHTML(found[4]),
	}

	if listing.Day == "" || listing.MonthAbbrev == "" || listing.Year == "" || listing.Href == "" {
		return Listing{}, false
	}
	return listing, true
}

func innerHTML(sel *goquery.Selection) string {
	h, err := sel.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(h)
}

// leadingHTML keeps the link text up to the first nested tag; agenda links
// sometimes carry trailing badges.
func leadingHTML(sel *goquery.Selection) string {
	h := innerHTML(sel)
	if i := strings.Index(h, "<"); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}
