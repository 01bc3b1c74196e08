// Command chromatool is the offline companion to the chroma library:
// it parses color descriptions, searches for the best description of a
// target color, renders palette swatch sheets and extracts dominant
// colors from images.
package main

func main() {
	Execute()
}
