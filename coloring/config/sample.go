// Copyright 2025 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

const idSample = "coloring-1"

const coloringSample = `
# The match field that carries the color (dl_src|dl_dst|nw_src|nw_dst|in_port|
# dl_vlan|tp_src|tp_dst|nw_tos|nw_proto). (default dl_src)
color_field = "dl_src"
# The period of the topology poll. (default 10s)
coloring_interval = "10s"
# The topology endpoint of the controller.
# (default http://localhost:8181/api/kytos/topology/v3/)
topology_url = "http://localhost:8181/api/kytos/topology/v3/"
# A YAML topology snapshot that is read instead of polling topology_url.
# (default "")
topology_file = ""
# The flow endpoint of the controller. %s is replaced by the switch id.
# (default http://localhost:8181/api/kytos/flow_manager/v2/flows/%s)
flow_manager_url = "http://localhost:8181/api/kytos/flow_manager/v2/flows/%s"
# The top byte of the coloring flow cookies. (default 172)
cookie_prefix = 172
# The table groups that may be offered. (default ["base"])
table_groups = ["base"]
# The OpenFlow versions flows are installed for. (default ["0x04"])
supported_versions = ["0x04"]
# The endpoint that receives table-group acks. If empty, acks are only
# logged. (default "")
ack_url = ""
# The timeout of every request to the controller. (default 10s)
request_timeout = "10s"
# How long failed flow requests are kept for inspection. (default 1h)
failure_ttl = "1h"
`
