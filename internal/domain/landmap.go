package domain

import "time"

// LandMap is the finished artifact of one pipeline run, handed to publishers.
type LandMap struct {
	Resolution  int
	Base        Shape
	Mask        Mask
	Samples     int
	FromCache   bool
	GeneratedAt time.Time
}
