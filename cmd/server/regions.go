package main

import (
	"net/http"

	"github.com/marben/fractarium"
)

type regionResponse struct {
	Name     string  `json:"name"`
	Midpoint string  `json:"midpoint"`
	Xmin     float64 `json:"xmin"`
	Xmax     float64 `json:"xmax"`
	Ymin     float64 `json:"ymin"`
	Ymax     float64 `json:"ymax"`
}

// handleRegions lists the landmarks accepted by the region query parameter.
func handleRegions(w http.ResponseWriter, _ *http.Request) {
	regions := fractarium.Regions()
	resp := make([]regionResponse, 0, len(regions))
	for _, r := range regions {
		resp = append(resp, regionResponse{
			Name:     r.Name,
			Midpoint: fractarium.FormatComplex(r.Center()),
			Xmin:     r.Xmin,
			Xmax:     r.Xmax,
			Ymin:     r.Ymin,
			Ymax:     r.Ymax,
		})
	}
	writeJSON(w, resp)
}
