//go:build !linux && !tinygo

package main

import "log"

func main() {
	log.Fatalf("fatal: attendance-kiosk requires the Linux GPIO character device and periph host drivers")
}
