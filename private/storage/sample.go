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

package storage

const journalSample = `
# The sqlite file of the flow request journal. If empty, requests are not
# journaled. (default "")
connection = "/var/lib/coloring/%s.journal.db"
# The maximum number of open read connections. (default 0, unlimited)
max_open_conns = 0
# The maximum number of idle read connections. (default 0, driver default)
max_idle_conns = 0
# How long journal entries are kept. (default 7d)
retention = "7d"
# How often old journal entries are deleted. (default 5m)
clean_interval = "5m"
`
