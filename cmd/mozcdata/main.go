// Command mozcdata inspects, verifies and packs input method datasets.
package main

func main() {
	execute()
}
