package main

import (
	"github.com/cs23b1093/gigflow/app"
)

func main() {
	app.Run()
}
