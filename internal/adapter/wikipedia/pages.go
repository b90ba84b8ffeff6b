package wikipedia

import "strconv"

// PageNames lists the source pages in fetch order: the prime meridian, the
// antimeridian, then every whole-degree meridian east and west of Greenwich.
func PageNames() []string {
	pages := make([]string, 0, 2+2*179)
	pages = append(pages, "IERS_Reference_Meridian", "180th_meridian")
	for i := 1; i < 180; i++ {
		pages = append(pages, ordinal(i)+"_meridian_east", ordinal(i)+"_meridian_west")
	}
	return pages
}

// ordinal renders i with its English ordinal suffix: 1st, 2nd, 3rd, 11th, 112th.
func ordinal(i int) string {
	n := strconv.Itoa(i)
	switch {
	case i%100 >= 11 && i%100 <= 13:
		return n + "th"
	case i%10 == 1:
		return n + "st"
	case i%10 == 2:
		return n + "nd"
	case i%10 == 3:
		return n + "rd"
	default:
		return n + "th"
	}
}
