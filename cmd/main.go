package main

import "github.com/kerbaras/mapleseed/cmd/maple"

func main() {
	maple.Execute()
}
