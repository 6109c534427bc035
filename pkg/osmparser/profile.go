package osmparser

import (
	"strconv"
	"strings"

	"lintang/begraphes/pkg/datastructure"

	"github.com/paulmach/osm"
)

// https://github.com/RoutingKit/RoutingKit/blob/master/src/osm_profile.cpp  [is_osm_way_used_by_cars()]
func isOsmWayUsedByCars(tagMap map[string]string) bool {
	_, ok := tagMap["junction"]
	if ok {
		return true
	}

	route, ok := tagMap["route"]
	if ok && route == "ferry" {
		return true
	}

	ferry, ok := tagMap["ferry"]
	if ok && ferry == "yes" {
		return true
	}

	highway, okHW := tagMap["highway"]
	if !okHW {
		return false
	}

	motorcar, ok := tagMap["motorcar"]
	if ok && motorcar == "no" {
		return false
	}

	motorVehicle, ok := tagMap["motor_vehicle"]
	if ok && motorVehicle == "no" {
		return false
	}

	access, ok := tagMap["access"]
	if ok {
		if !(access == "yes" || access == "permissive" || access == "designated" || access == "delivery" || access == "destination") {
			return false
		}
	}

	switch highway {
	case "motorway", "trunk", "primary", "secondary", "tertiary", "unclassified", "residential",
		"living_street", "service", "motorway_link", "trunk_link", "primary_link", "secondary_link", "tertiary_link":
		return true
	case "bicycle_road":
		return tagMap["motorcar"] == "yes"
	case "construction", "path", "footway", "cycleway", "bridleway", "pedestrian", "bus_guideway",
		"raceway", "escape", "steps", "proposed", "conveying":
		return false
	}

	oneway, ok := tagMap["oneway"]
	if ok {
		if oneway == "reversible" || oneway == "alternating" {
			return false
		}
	}

	_, ok = tagMap["maxspeed"]
	return ok
}

// https://github.com/RoutingKit/RoutingKit/blob/master/src/osm_profile.cpp  [is_osm_way_used_by_pedestrians()]
func isOsmWayUsedByPedestrians(tagMap map[string]string) bool {
	if junction, ok := tagMap["junction"]; ok && junction == "roundabout" {
		return true
	}
	if route, ok := tagMap["route"]; ok && route == "ferry" {
		return true
	}
	if ferry, ok := tagMap["ferry"]; ok && ferry == "yes" {
		return true
	}

	highway, ok := tagMap["highway"]
	if !ok {
		return false
	}

	if access, ok := tagMap["access"]; ok {
		if !(access == "yes" || access == "permissive" || access == "designated" || access == "delivery" || access == "destination") {
			return false
		}
	}
	if crossing, ok := tagMap["crossing"]; ok && crossing == "no" {
		return false
	}
	if foot, ok := tagMap["foot"]; ok && foot == "no" {
		return false
	}

	switch highway {
	case "construction", "motorway", "motorway_link", "trunk", "trunk_link", "proposed",
		"bus_guideway", "raceway", "escape":
		return false
	}
	return true
}

type wayAttributes struct {
	roadClass      string
	streetName     string
	maxSpeed       float64
	oneWay         bool
	reversedOneWay bool
	roundabout     bool
	carAccess      bool
	footAccess     bool
}

func getWayAttributes(way *osm.Way) wayAttributes {
	tags := way.TagMap()
	attr := wayAttributes{
		roadClass:  tags["highway"],
		streetName: tags["name"],
		roundabout: tags["junction"] == "roundabout" || tags["junction"] == "circular",
		carAccess:  isOsmWayUsedByCars(tags),
		footAccess: isOsmWayUsedByPedestrians(tags),
	}

	// oneway tags restrict vehicles only, pedestrians walk both ways
	switch tags["oneway"] {
	case "yes", "true", "1":
		attr.oneWay = true
	case "-1", "reverse":
		attr.oneWay = true
		attr.reversedOneWay = true
	}
	if attr.roundabout && tags["oneway"] != "no" {
		attr.oneWay = true
	}

	attr.maxSpeed = parseMaxSpeed(tags["maxspeed"])
	if attr.maxSpeed <= 0 {
		attr.maxSpeed = datastructure.RoadTypeMaxSpeed(attr.roadClass)
	}
	return attr
}

// access travel modes allowed along the way (reverse=false) or against its node order.
func (attr wayAttributes) access(reverse bool) datastructure.Access {
	var a datastructure.Access
	if attr.carAccess && (!attr.oneWay || attr.reversedOneWay == reverse) {
		a |= datastructure.AccessCar
	}
	if attr.footAccess {
		a |= datastructure.AccessFoot
	}
	return a
}

// parseMaxSpeed returns km/h, 0 if the tag is missing or not numeric ("none", "signals", ...).
func parseMaxSpeed(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	factor := 1.0
	if strings.HasSuffix(v, "mph") {
		factor = 1.609344
		v = strings.TrimSpace(strings.TrimSuffix(v, "mph"))
	} else if strings.HasSuffix(v, "km/h") {
		v = strings.TrimSpace(strings.TrimSuffix(v, "km/h"))
	}
	speed, err := strconv.ParseFloat(v, 64)
	if err != nil || speed <= 0 {
		return 0
	}
	return speed * factor
}
