package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/LdDl/iou-go/iou"
	"github.com/pkg/errors"
)

func main() {
	var (
		rect1  = flag.String("r1", "3,2,9,10", "First rectangle as x1,y1,x2,y2")
		rect2  = flag.String("r2", "0,0,6,8", "Second rectangle as x1,y1,x2,y2")
		legacy = flag.Bool("legacy", false, "Use legacy formulas (swapped enclosing y1, truncated centers)")
		strict = flag.Bool("validate", false, "Reject rectangles with unordered corners")
		all    = flag.Bool("all", false, "Print every metric, not only IoU and GIoU")
	)
	flag.Parse()

	r1, err := parseRect(*rect1)
	if err != nil {
		log.Fatalln(err)
	}
	r2, err := parseRect(*rect2)
	if err != nil {
		log.Fatalln(err)
	}

	calculator := iou.NewCalculator(
		iou.WithStrictLegacyFormulas(*legacy),
		iou.WithCornerValidation(*strict),
	)
	metrics := []iou.Metric{iou.MetricIoU, iou.MetricGIoU}
	if *all {
		metrics = iou.Metrics()
	}
	for _, metric := range metrics {
		value, err := calculator.Score(metric, r1, r2)
		if err != nil {
			fmt.Printf("%s: %v\n", metric, err)
			continue
		}
		fmt.Printf("%s: %v\n", metric, value)
	}
}

func parseRect(s string) (iou.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return iou.Rectangle{}, errors.Errorf("rectangle '%s' must have 4 comma-separated coordinates", s)
	}
	var coords [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return iou.Rectangle{}, errors.Wrapf(err, "bad coordinate in rectangle '%s'", s)
		}
		coords[i] = v
	}
	return iou.NewRect(coords[0], coords[1], coords[2], coords[3]), nil
}
