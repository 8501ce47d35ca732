// Package pipeline holds the text transforms applied to HTML before it
// reaches the browser:
//   - RewriteURLs makes href/src and CSS url() references absolute against
//     the host site and optionally session-qualifies them
//   - InjectStyle adds the page size and margin CSS as a <style> block
//   - MarkdownConverter turns Markdown sources into standalone HTML
//
// Browser rendering and PDF assembly live in the root chromepdf package.
package pipeline
