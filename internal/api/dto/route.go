package dto

type WaypointRequest struct {
	SystemID int64 `json:"system_id"`
	Kind     uint8 `json:"kind"`
}

type EncodeRouteRequest struct {
	Waypoints []WaypointRequest `json:"waypoints"`
}

type EncodeRouteResponse struct {
	Token string `json:"token"`
}

type ResolvedWaypointResponse struct {
	SystemID int64  `json:"system_id"`
	Kind     uint8  `json:"kind"`
	Label    string `json:"label"`
	Name     string `json:"name"`
	Known    bool   `json:"known"`
}

type ResolveRouteResponse struct {
	Waypoints []ResolvedWaypointResponse `json:"waypoints"`
}
