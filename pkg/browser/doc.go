// Package browser manages the single headless Chromium session behind the
// browsd tools.
//
// The session is created lazily: the first action launches Playwright, starts
// a Chromium instance, and opens one page. Both handles are cached for the
// process lifetime and every later action reuses the same page. Creation is
// guarded by a mutex so concurrent first actions launch at most one browser;
// a failed launch is not cached, and the next action retries it.
//
// There is exactly one page. Concurrent actions race on it; the last
// navigation or interaction to complete wins the page's state. Callers that
// need deterministic ordering must serialize their requests themselves.
package browser
