package citation

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Dineshwev/final-project-sub007/nap"
)

// parseCitation pulls the business name, address and phone out of a citation
// page. Structured data wins over markup heuristics: JSON-LD first, then
// schema.org microdata, then plain-HTML fallbacks (tel: links, <address>,
// <title>). Fields the page does not expose stay empty; the comparator
// classifies them as missing.
func parseCitation(doc *goquery.Document) nap.Citation {
	citation := nap.Citation{}

	if record, ok := parseJSONLD(doc); ok {
		citation.Record = record
	}

	if citation.Name == "" || citation.Address == "" || citation.Phone == "" {
		fillFromMicrodata(doc, &citation.Record)
	}
	if citation.Name == "" || citation.Address == "" || citation.Phone == "" {
		fillFromMarkup(doc, &citation.Record)
	}

	return citation
}

// parseJSONLD scans every ld+json script for a node that looks like a
// business listing: anything carrying a name plus an address or telephone.
func parseJSONLD(doc *goquery.Document) (nap.Record, bool) {
	var record nap.Record
	found := false

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // malformed block, keep scanning
		}

		if r, ok := businessNode(data); ok {
			record = r
			found = true
			return false
		}
		return true
	})

	return record, found
}

// businessNode walks a decoded JSON-LD value looking for a business-shaped
// object, descending into arrays and @graph containers.
func businessNode(data interface{}) (nap.Record, bool) {
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			if r, ok := businessNode(item); ok {
				return r, true
			}
		}
	case map[string]interface{}:
		if graph, ok := v["@graph"]; ok {
			if r, ok := businessNode(graph); ok {
				return r, true
			}
		}

		name := stringValue(v["name"])
		address := addressValue(v["address"])
		phone := stringValue(v["telephone"])

		if name != "" && (address != "" || phone != "") {
			return nap.Record{Name: name, Address: address, Phone: phone}, true
		}
	}

	return nap.Record{}, false
}

// stringValue extracts a plain string from a JSON-LD value.
func stringValue(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// addressValue renders a JSON-LD address, either a plain string or a
// PostalAddress object, as a single comma-joined line.
func addressValue(v interface{}) string {
	switch addr := v.(type) {
	case string:
		return strings.TrimSpace(addr)
	case map[string]interface{}:
		parts := []string{}
		for _, key := range []string{"streetAddress", "addressLocality", "addressRegion", "postalCode"} {
			if part := stringValue(addr[key]); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// fillFromMicrodata fills empty fields from schema.org microdata attributes.
func fillFromMicrodata(doc *goquery.Document, record *nap.Record) {
	if record.Name == "" {
		record.Name = itempropText(doc, "name")
	}

	if record.Phone == "" {
		record.Phone = itempropText(doc, "telephone")
	}

	if record.Address == "" {
		parts := []string{}
		for _, prop := range []string{"streetAddress", "addressLocality", "addressRegion", "postalCode"} {
			if part := itempropText(doc, prop); part != "" {
				parts = append(parts, part)
			}
		}
		record.Address = strings.Join(parts, ", ")
	}
}

// itempropText returns the first itemprop value, preferring the content
// attribute over element text.
func itempropText(doc *goquery.Document, prop string) string {
	sel := doc.Find(`[itemprop="` + prop + `"]`).First()
	if sel.Length() == 0 {
		return ""
	}
	if content, exists := sel.Attr("content"); exists && strings.TrimSpace(content) != "" {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(sel.Text())
}

// fillFromMarkup fills remaining empty fields from common page markup.
func fillFromMarkup(doc *goquery.Document, record *nap.Record) {
	if record.Name == "" {
		if siteName, exists := doc.Find(`meta[property="og:site_name"]`).Attr("content"); exists {
			record.Name = strings.TrimSpace(siteName)
		}
	}
	if record.Name == "" {
		record.Name = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if record.Phone == "" {
		doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			record.Phone = strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
			return false
		})
	}

	if record.Address == "" {
		text := doc.Find("address").First().Text()
		record.Address = strings.Join(strings.Fields(text), " ")
	}
}
