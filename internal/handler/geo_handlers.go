package handler

import (
	"redserver/internal/protocol"
	"redserver/internal/storage"
)

func (h *CommandHandler) registerGeoCommands() {
	h.commands["GEOADD"] = cmdGeoAdd
	h.commands["GEOPOS"] = cmdGeoPos
	h.commands["GEODIST"] = cmdGeoDist
	h.commands["GEOHASH"] = cmdGeoHash
	h.commands["GEORADIUS"] = cmdGeoRadius
	h.commands["GEORADIUSBYMEMBER"] = cmdGeoRadiusByMember
}

func cmdGeoAdd(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 5 || (len(args)-2)%3 != 0 {
		return protocol.EncodeError("ERR wrong number of arguments for 'geoadd' command")
	}
	points := make([]storage.GeoPoint, 0, (len(args)-2)/3)
	for i := 2; i < len(args); i += 3 {
		lon, err1 := parseFloat(args[i])
		lat, err2 := parseFloat(args[i+1])
		if err1 != nil || err2 != nil {
			return protocol.EncodeError("ERR value is not a valid float")
		}
		points = append(points, storage.GeoPoint{Longitude: lon, Latitude: lat, Member: args[i+2]})
	}
	n := h.store.GeoAdd(args[1], points)
	if n < 0 {
		return protocol.EncodeError("ERR invalid longitude,latitude pair")
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdGeoPos(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'geopos' command")
	}
	points := h.store.GeoPos(args[1], args[2:])
	var buf [][]byte
	for _, p := range points {
		if p == nil {
			buf = append(buf, protocol.EncodeNullArray())
			continue
		}
		buf = append(buf, protocol.EncodeStringArray([]string{formatFloat(p.Longitude), formatFloat(p.Latitude)}))
	}
	return protocol.EncodeRawArray(buf)
}

func geoUnit(args []string, idx int) string {
	if idx < len(args) {
		return args[idx]
	}
	return "m"
}

func cmdGeoDist(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'geodist' command")
	}
	dist := h.store.GeoDist(args[1], args[2], args[3], geoUnit(args, 4))
	if dist == nil {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeBulkString(formatFloat(*dist))
}

func cmdGeoHash(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'geohash' command")
	}
	return protocol.EncodeStringArray(h.store.GeoHash(args[1], args[2:]))
}

func cmdGeoRadius(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 6 {
		return protocol.EncodeError("ERR wrong number of arguments for 'georadius' command")
	}
	lon, err1 := parseFloat(args[2])
	lat, err2 := parseFloat(args[3])
	radius, err3 := parseFloat(args[4])
	if err1 != nil || err2 != nil || err3 != nil {
		return protocol.EncodeError("ERR value is not a valid float")
	}
	unit := args[5]
	withDist, withHash, withCoord, count := parseGeoRadiusOpts(args[6:])
	results := h.store.GeoRadius(args[1], lon, lat, radius, unit, withDist, withHash, withCoord, count)
	return encodeGeoResults(results, withDist, withHash, withCoord)
}

func cmdGeoRadiusByMember(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 5 {
		return protocol.EncodeError("ERR wrong number of arguments for 'georadiusbymember' command")
	}
	radius, err := parseFloat(args[3])
	if err != nil {
		return protocol.EncodeError("ERR value is not a valid float")
	}
	unit := args[4]
	withDist, withHash, withCoord, count := parseGeoRadiusOpts(args[5:])
	results := h.store.GeoRadiusByMember(args[1], args[2], radius, unit, withDist, withHash, withCoord, count)
	return encodeGeoResults(results, withDist, withHash, withCoord)
}

func parseGeoRadiusOpts(args []string) (withDist, withHash, withCoord bool, count int) {
	count = -1
	for i := 0; i < len(args); i++ {
		switch upper(args[i]) {
		case "WITHDIST":
			withDist = true
		case "WITHHASH":
			withHash = true
		case "WITHCOORD":
			withCoord = true
		case "COUNT":
			if i+1 < len(args) {
				if n, err := atoi(args[i+1]); err == nil {
					count = n
				}
				i++
			}
		}
	}
	return
}

func encodeGeoResults(results []storage.GeoRadiusResult, withDist, withHash, withCoord bool) []byte {
	buf := make([][]byte, 0, len(results))
	for _, r := range results {
		if !withDist && !withHash && !withCoord {
			buf = append(buf, protocol.EncodeBulkString(r.Member))
			continue
		}
		var sub [][]byte
		sub = append(sub, protocol.EncodeBulkString(r.Member))
		if withDist {
			sub = append(sub, protocol.EncodeBulkString(formatFloat(r.Distance)))
		}
		if withHash {
			sub = append(sub, protocol.EncodeInteger(r.GeoHash))
		}
		if withCoord {
			sub = append(sub, protocol.EncodeStringArray([]string{formatFloat(r.Point.Longitude), formatFloat(r.Point.Latitude)}))
		}
		buf = append(buf, protocol.EncodeRawArray(sub))
	}
	return protocol.EncodeRawArray(buf)
}
