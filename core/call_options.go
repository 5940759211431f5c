package core

import "time"

// CallOptions carries per-call overrides. A nil *CallOptions is equivalent to
// the zero value.
type CallOptions struct {
	BaseURL       string
	Timeout       time.Duration
	RetryCount    *uint
	RetryInterval time.Duration
}

func (o CallOptions) WithBaseURL(baseURL string) CallOptions {
	o.BaseURL = baseURL
	return o
}

func (o CallOptions) WithTimeout(timeout time.Duration) CallOptions {
	o.Timeout = timeout
	return o
}

func (o CallOptions) WithRetryCount(count uint) CallOptions {
	o.RetryCount = &count
	return o
}

func (o CallOptions) WithRetryInterval(interval time.Duration) CallOptions {
	o.RetryInterval = interval
	return o
}

type CallDefaults struct {
	BaseURL       string
	Timeout       time.Duration
	RetryCount    uint
	RetryInterval time.Duration
}

type ResolvedTarget struct {
	BaseURL string
	Timeout time.Duration
}

// URL appends path to the resolved base URL verbatim.
func (t ResolvedTarget) URL(path string) string {
	return t.BaseURL + path
}

func (d CallDefaults) Resolve(opts *CallOptions) ResolvedTarget {
	var call CallOptions
	if opts != nil {
		call = *opts
	}
	target := ResolvedTarget{BaseURL: DefaultBaseURL}
	switch {
	case call.BaseURL != "":
		target.BaseURL = call.BaseURL
	case d.BaseURL != "":
		target.BaseURL = d.BaseURL
	}
	switch {
	case call.Timeout > 0:
		target.Timeout = call.Timeout
	case d.Timeout > 0:
		target.Timeout = d.Timeout
	}
	return target
}

func (d CallDefaults) ResolveRetry(opts *CallOptions) (uint, time.Duration) {
	count := d.RetryCount
	interval := d.RetryInterval
	if opts != nil {
		if opts.RetryCount != nil {
			count = *opts.RetryCount
		}
		if opts.RetryInterval > 0 {
			interval = opts.RetryInterval
		}
	}
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	return count, interval
}
