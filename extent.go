// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

import (
	"math"
	"time"

	"github.com/golang/geo/s2"
)

//---- Extent ----

// Extent is a spatio-temporal domain of validity: an optional geographic
// bounding box and an optional time interval. A nil *Extent means the domain
// is unspecified.
type Extent struct {
	bbox    s2.Rect
	hasBBox bool
	start   time.Time
	end     time.Time
}

// NewExtent creates an extent from a geographic bounding box in degrees.
func NewExtent(westDeg, eastDeg, southDeg, northDeg float64) *Extent {
	r := s2.RectFromLatLng(s2.LatLngFromDegrees(southDeg, westDeg))
	r = r.AddPoint(s2.LatLngFromDegrees(northDeg, eastDeg))
	return &Extent{bbox: r, hasBBox: true}
}

// NewTemporalExtent creates an extent covering only a time interval.
func NewTemporalExtent(start, end time.Time) *Extent {
	return &Extent{start: start, end: end}
}

// WithTime returns a copy of the extent with the given time interval.
func (x *Extent) WithTime(start, end time.Time) *Extent {
	c := *x
	c.start = start
	c.end = end
	return &c
}

func (x *Extent) HasBoundingBox() bool {
	return x != nil && x.hasBBox
}

func (x *Extent) BoundingBox() s2.Rect {
	return x.bbox
}

func (x *Extent) HasTime() bool {
	return x != nil && !(x.start.IsZero() && x.end.IsZero())
}

// TimeMidpoint returns the midpoint of the time interval, or false when the
// extent has no temporal component.
func (x *Extent) TimeMidpoint() (time.Time, bool) {
	if !x.HasTime() {
		return time.Time{}, false
	}
	if x.start.IsZero() {
		return x.end, true
	}
	if x.end.IsZero() {
		return x.start, true
	}
	return x.start.Add(x.end.Sub(x.start) / 2), true
}

// timeIntersects reports whether the two time intervals overlap. Intervals
// with an unspecified side are open on that side.
func (x *Extent) timeIntersects(o *Extent) bool {
	if !x.HasTime() || !o.HasTime() {
		return true
	}
	if !x.end.IsZero() && !o.start.IsZero() && x.end.Before(o.start) {
		return false
	}
	if !o.end.IsZero() && !x.start.IsZero() && o.end.Before(x.start) {
		return false
	}
	return true
}

// rectArea is the area of a lat/lng rectangle on the unit sphere.
func rectArea(r s2.Rect) float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Lng.Length() * (math.Sin(r.Lat.Hi) - math.Sin(r.Lat.Lo))
}

//---- extentSelector ----

// extentSelector picks the candidate whose domain of validity best covers an
// area of interest. Candidates are offered in declaration order and the
// first best one wins. Candidates without a bounding box are kept only as
// fallback when nothing intersects the area of interest.
type extentSelector struct {
	aoi      *Extent
	useBBox  bool
	useTime  bool
	best     DatumShift
	bestArea float64
	found    bool
}

func newExtentSelector(aoi *Extent, useBBox, useTime bool) *extentSelector {
	return &extentSelector{aoi: aoi, useBBox: useBBox, useTime: useTime, bestArea: -2}
}

// offer evaluates one candidate and keeps it when it covers the area of
// interest better than the current best.
func (s *extentSelector) offer(domain *Extent, candidate DatumShift) {
	area := -1.0 // Unknown domain: usable, ranks below any real intersection.
	if s.useTime && s.aoi.HasTime() && domain.HasTime() {
		if !s.aoi.timeIntersects(domain) {
			return
		}
	}
	if s.useBBox && s.aoi.HasBoundingBox() && domain.HasBoundingBox() {
		inter := s.aoi.bbox.Intersection(domain.bbox)
		if inter.IsEmpty() {
			return
		}
		area = rectArea(inter)
	}
	if !s.found || area > s.bestArea {
		s.best = candidate
		s.bestArea = area
		s.found = true
	}
}
