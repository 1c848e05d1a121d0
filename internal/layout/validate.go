package layout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ValidateNesting checks that every element in the markup is closed
// exactly once and that open/close nesting is well-formed, using a tag
// stack over the raw token stream.
func ValidateNesting(markup string) error {
	z := html.NewTokenizer(strings.NewReader(markup))
	var stack []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if len(stack) != 0 {
					return fmt.Errorf("unclosed elements: %s", strings.Join(stack, ", "))
				}
				return nil
			}
			return fmt.Errorf("tokenize: %w", z.Err())
		case html.StartTagToken:
			name, _ := z.TagName()
			stack = append(stack, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 {
				return fmt.Errorf("unexpected closing tag </%s>", name)
			}
			if top := stack[len(stack)-1]; top != string(name) {
				return fmt.Errorf("mismatched closing tag </%s>, expected </%s>", name, top)
			}
			stack = stack[:len(stack)-1]
		case html.TextToken, html.CommentToken, html.DoctypeToken, html.SelfClosingTagToken:
		}
	}
}
