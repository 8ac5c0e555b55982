// Package arr talks to the Radarr/Sonarr v3 REST API.
//
// Client wraps the three endpoints strikearr needs: the download queue, queue
// item deletion and the health probe used to validate credentials at start-up.
// Fetcher and Remover adapt the client to the monitor's degrade-and-continue
// error policy: failures are logged and the next scheduled run retries.
package arr
