package browser

import "fmt"

// OpenURL navigates the page to url and returns the document title read
// after the navigation completes.
func (m *Manager) OpenURL(url string) (*OpenURLResult, error) {
	p, err := m.acquire()
	if err != nil {
		return nil, err
	}

	if _, err := p.Goto(url); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	title, err := p.Title()
	if err != nil {
		return nil, fmt.Errorf("title read failed: %w", err)
	}

	return &OpenURLResult{Title: title, URL: url}, nil
}

// Click clicks the first element matching the CSS selector.
func (m *Manager) Click(selector string) (*ClickResult, error) {
	p, err := m.acquire()
	if err != nil {
		return nil, err
	}

	if err := p.Click(selector); err != nil {
		return nil, fmt.Errorf("click failed: %w", err)
	}

	return &ClickResult{Status: "clicked", Selector: selector}, nil
}

// Fill sets the value of the input matching the CSS selector to text.
func (m *Manager) Fill(selector, text string) (*FillResult, error) {
	p, err := m.acquire()
	if err != nil {
		return nil, err
	}

	if err := p.Fill(selector, text); err != nil {
		return nil, fmt.Errorf("fill failed: %w", err)
	}

	return &FillResult{Status: "filled", Selector: selector, Text: text}, nil
}

// Text reads the visible text of the document body, truncated to
// MaxTextLength characters.
func (m *Manager) Text() (*TextResult, error) {
	p, err := m.acquire()
	if err != nil {
		return nil, err
	}

	text, err := p.InnerText("body")
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	return &TextResult{Text: truncate(text, MaxTextLength)}, nil
}

// truncate returns the first n characters of s. Truncation is by rune so a
// multi-byte character is never split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
