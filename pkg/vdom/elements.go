package vdom

import "fmt"

// Variadic factory functions for common elements, in the style of
//
//	Div(Class("card"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    Button(On("click", handler), Text("+")),
//	)

func Div(parts ...any) *VNode    { return El("div", parts...) }
func Span(parts ...any) *VNode   { return El("span", parts...) }
func P(parts ...any) *VNode      { return El("p", parts...) }
func H1(parts ...any) *VNode     { return El("h1", parts...) }
func H2(parts ...any) *VNode     { return El("h2", parts...) }
func H3(parts ...any) *VNode     { return El("h3", parts...) }
func Ul(parts ...any) *VNode     { return El("ul", parts...) }
func Ol(parts ...any) *VNode     { return El("ol", parts...) }
func Li(parts ...any) *VNode     { return El("li", parts...) }
func A(parts ...any) *VNode      { return El("a", parts...) }
func B(parts ...any) *VNode      { return El("b", parts...) }
func I(parts ...any) *VNode      { return El("i", parts...) }
func Button(parts ...any) *VNode { return El("button", parts...) }
func Input(parts ...any) *VNode  { return El("input", parts...) }
func Label(parts ...any) *VNode  { return El("label", parts...) }
func Form(parts ...any) *VNode   { return El("form", parts...) }
func Img(parts ...any) *VNode    { return El("img", parts...) }
func Section(parts ...any) *VNode { return El("section", parts...) }
func Header(parts ...any) *VNode  { return El("header", parts...) }
func Footer(parts ...any) *VNode  { return El("footer", parts...) }
func Main(parts ...any) *VNode    { return El("main", parts...) }
func Nav(parts ...any) *VNode     { return El("nav", parts...) }

// Textf creates a static text node from a format string.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}
