// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package proxy forwards dev and preview server requests to upstream
// services according to a table of prefix rules.
package proxy

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Rule maps a request path prefix to an upstream target.
type Rule struct {
	// Context is the path prefix the rule applies to, e.g. "/api". It is a
	// plain string prefix: "/apiary" matches "/api" too.
	Context string `json:"context" yaml:"context"`
	// Target is the upstream base URL.
	Target string `json:"target" yaml:"target"`
	// ChangeOrigin rewrites the Host header to the target's host.
	ChangeOrigin bool `json:"changeOrigin" yaml:"changeOrigin"`
	// Secure verifies the upstream TLS certificate.
	Secure bool `json:"secure" yaml:"secure"`
	// Rewrite transforms the request path before forwarding.
	Rewrite Rewriter `json:"rewrite" yaml:"rewrite"`
}

// Matches reports whether path falls under the rule.
func (r Rule) Matches(path string) bool {
	return r.Context != "" && strings.HasPrefix(path, r.Context)
}

// Validate checks that the rule can be turned into a handler.
func (r Rule) Validate() error {
	if !strings.HasPrefix(r.Context, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidContext, r.Context)
	}
	u, err := url.Parse(r.Target)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidTarget, r.Target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q: scheme and host are required", ErrInvalidTarget, r.Target)
	}
	return nil
}

// Rewriter replaces the first match of an anchored pattern in a request path.
// The zero value leaves paths untouched.
type Rewriter struct {
	pattern     *regexp.Regexp
	replacement string
}

// StripPrefix returns a rewriter removing prefix from the start of a path
// exactly once: "/api/api/x" becomes "/api/x".
func StripPrefix(prefix string) Rewriter {
	return Rewriter{
		pattern: regexp.MustCompile("^" + regexp.QuoteMeta(prefix)),
	}
}

// Apply rewrites path.
func (r Rewriter) Apply(path string) string {
	if r.pattern == nil {
		return path
	}
	loc := r.pattern.FindStringIndex(path)
	if loc == nil {
		return path
	}
	return path[:loc[0]] + r.replacement + path[loc[1]:]
}

// String renders the rewrite as "pattern -> replacement".
func (r Rewriter) String() string {
	if r.pattern == nil {
		return ""
	}
	return fmt.Sprintf("%s -> %q", r.pattern.String(), r.replacement)
}

type rewriterDump struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

func (r Rewriter) dump() *rewriterDump {
	if r.pattern == nil {
		return nil
	}
	return &rewriterDump{Pattern: r.pattern.String(), Replacement: r.replacement}
}

// MarshalJSON renders the rewriter as its pattern and replacement, or null
// for the identity rewrite.
func (r Rewriter) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.dump())
}

// MarshalYAML renders the rewriter like MarshalJSON.
func (r Rewriter) MarshalYAML() (any, error) {
	return r.dump(), nil
}

// Table is an ordered set of rules.
type Table []Rule

// Match returns the rule with the longest context that prefixes path.
func (t Table) Match(path string) (Rule, bool) {
	var (
		best  Rule
		found bool
	)
	for _, rule := range t {
		if !rule.Matches(path) {
			continue
		}
		if !found || len(rule.Context) > len(best.Context) {
			best = rule
			found = true
		}
	}
	return best, found
}

// Validate checks every rule.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for _, rule := range t {
		if err := rule.Validate(); err != nil {
			return err
		}
		if _, dup := seen[rule.Context]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateContext, rule.Context)
		}
		seen[rule.Context] = struct{}{}
	}
	return nil
}
