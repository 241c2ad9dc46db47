// Command matchviz renders keypoints, matches and homography overlays
// described by a scene file.
//
// Usage:
//
//	matchviz keypoints scene.yaml -o kps.png
//	matchviz matches scene.yaml -o matches.png --show
//	matchviz transform scene.yaml -o transform.tif
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
