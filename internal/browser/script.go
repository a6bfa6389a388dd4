package browser

import (
	"encoding/json"
	"fmt"
)

// jsString renders s as a JavaScript string literal
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// ExistsScript returns an expression that is true when selector matches
func ExistsScript(selector string) string {
	if IsXPath(selector) {
		return fmt.Sprintf(`document.evaluate(%s, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue !== null`, jsString(selector))
	}
	return fmt.Sprintf(`document.querySelector(%s) !== null`, jsString(selector))
}

// ScrollToBottomScript scrolls to the end and yields the document height
const ScrollToBottomScript = `(() => { window.scrollTo(0, document.body.scrollHeight); return document.body.scrollHeight; })()`

// ScrollHeightScript yields the current document height
const ScrollHeightScript = `document.body.scrollHeight`

// ScrollToTopScript scrolls back to the top
const ScrollToTopScript = `(() => { window.scrollTo(0, 0); return 0; })()`

// ExpandScript clicks every visible button whose label starts with one of
// labels and yields how many were clicked.
func ExpandScript(labels []string) string {
	b, _ := json.Marshal(labels)
	return fmt.Sprintf(`(() => {
	const labels = %s;
	let clicked = 0;
	for (const el of document.querySelectorAll('button, a[role="button"]')) {
		const text = (el.innerText || '').trim().toLowerCase();
		if (!text || el.offsetParent === null || el.dataset.scraperExpanded) continue;
		if (labels.some(l => text.startsWith(l))) {
			el.dataset.scraperExpanded = '1';
			el.click();
			clicked++;
		}
	}
	return clicked;
})()`, string(b))
}
