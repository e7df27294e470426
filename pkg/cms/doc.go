// Package cms is a small page-composition host. Pages declare named
// placeholders; each placeholder holds plugin instances that contribute
// content when the page template reaches {% placeholder "slot" %}.
//
// Plugins only return content. A plugin that needs to replace the whole
// response (for example a form redirecting after a successful submission)
// returns a forceresponse carrier; Site.Handler recovers it once the page
// render unwinds.
package cms
