package render

const layouts = `
{{define "ranking"}}
<h2>{{.Title}} ({{venue .Venue}})</h2>
<table>
<thead><tr><th>Pos</th><th>Crest</th><th>Team</th><th>P</th><th>J</th><th>PPG</th><th>W</th><th>D</th><th>L</th><th>GF</th><th>GA</th><th>GD</th><th>GPG</th><th>Win %</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Position}}</td><td>{{if .Crest}}<img src="{{.Crest}}" alt="{{.Team}}">{{end}}</td><td>{{.Team}}</td><td>{{.Points}}</td><td>{{.Games}}</td><td>{{dec .PointsPerGame}}</td><td>{{.Wins}}</td><td>{{.Draws}}</td><td>{{.Losses}}</td><td>{{.GoalsScored}}</td><td>{{.GoalsConceded}}</td><td>{{signed .GoalDiff}}</td><td>{{dec .GoalsPerGame}}</td><td>{{pct .WinPercentage}}</td></tr>
{{end}}
</tbody>
</table>
{{end}}

{{define "outcomes"}}{{range .}}<span style="color: {{.Color}}"><b>{{.}}</b></span> {{end}}{{end}}

{{define "form"}}
<h3>Last {{.Window}} matches ({{venue .Venue}})</h3>
<p>{{if .Outcomes}}{{template "outcomes" .Outcomes}}{{else}}No matches played.{{end}}</p>
<ul>
<li>Record: {{.Wins}}W {{.Draws}}D {{.Losses}}L</li>
<li>Points: {{.Points}}</li>
<li>Win %: {{pct .WinPercentage}}</li>
</ul>
{{end}}

{{define "h2h"}}
<h3>{{.Team}} vs {{.Opponent}}</h3>
{{if .Meetings}}<ul>
{{range .Meetings}}<li><span style="color: {{.Color}}"><b>Result: {{.Score}} - Match {{.Order}} - {{.Venue}}</b></span></li>
{{end}}</ul>{{else}}<p>No previous meetings.</p>{{end}}
{{end}}

{{define "summary"}}
<table>
<thead><tr><th>Metric</th><th>Value</th></tr></thead>
<tbody>
<tr><td>Points</td><td>{{.Points}}</td></tr>
<tr><td>Games</td><td>{{.Games}}</td></tr>
<tr><td>Wins / Draws / Losses</td><td>{{.Wins}} / {{.Draws}} / {{.Losses}}</td></tr>
<tr><td>Home W/D/L</td><td>{{.Home.Wins}} / {{.Home.Draws}} / {{.Home.Losses}}</td></tr>
<tr><td>Away W/D/L</td><td>{{.Away.Wins}} / {{.Away.Draws}} / {{.Away.Losses}}</td></tr>
<tr><td>Goals scored</td><td>{{.GoalsScored}}</td></tr>
<tr><td>Goals conceded</td><td>{{.GoalsConceded}}</td></tr>
<tr><td>Goal difference</td><td>{{signed .GoalDiff}}</td></tr>
<tr><td>Win %</td><td>{{pct .WinPercentage}}</td></tr>
<tr><td>Points per game</td><td>{{dec .PointsPerGame}}</td></tr>
<tr><td>Goals per game</td><td>{{dec .GoalsPerGame}}</td></tr>
<tr><td>Conceded per game</td><td>{{dec .ConcededPerGame}}</td></tr>
</tbody>
</table>
{{end}}

{{define "profile"}}
<h1>{{.Team}}</h1>
{{if .Crest}}<p><img src="{{.Crest}}" alt="{{.Team}}"></p>{{end}}
<h2>League position</h2>
<ul>
<li>Current: {{ordinal .Position.Current}}</li>
<li>Best: {{ordinal .Position.Best}}</li>
<li>Worst: {{ordinal .Position.Worst}}</li>
</ul>
<h2>Summary</h2>
{{template "summary" .Summary}}
<h2>Highlights</h2>
<ul>
<li>Best win: {{with .BestWin}}{{.GoalsScored}} x {{.GoalsConceded}} vs {{.Opponent}} (match {{.Order}}){{else}}none{{end}}</li>
<li>Worst loss: {{with .WorstLoss}}{{.GoalsScored}} x {{.GoalsConceded}} vs {{.Opponent}} (match {{.Order}}){{else}}none{{end}}</li>
<li>Longest winning run: {{.Streaks.Wins.Length}} (matches {{round .Streaks.Wins.Start}} to {{round .Streaks.Wins.End}})</li>
<li>Longest run without a win: {{.Streaks.Winless.Length}} (matches {{round .Streaks.Winless.Start}} to {{round .Streaks.Winless.End}})</li>
<li>Longest unbeaten run: {{.Streaks.Unbeaten.Length}} (matches {{round .Streaks.Unbeaten.Start}} to {{round .Streaks.Unbeaten.End}})</li>
<li>Longest losing run: {{.Streaks.Losses.Length}} (matches {{round .Streaks.Losses.Start}} to {{round .Streaks.Losses.End}})</li>
</ul>
{{template "form" .Form}}
<h2>Matches</h2>
<table>
<thead><tr><th>Match</th><th>Pos</th><th>Opponent</th><th>Venue</th><th>Score</th><th>Result</th><th>Pts</th><th>Total pts</th><th>Total GD</th></tr></thead>
<tbody>
{{range .Matches}}<tr><td>{{.Order}}</td><td>{{ordinal .Position}}</td><td>{{.Opponent}}</td><td>{{.Venue}}</td><td>{{.GoalsScored}} x {{.GoalsConceded}}</td><td>{{.Outcome}}</td><td>{{.Points}}</td><td>{{.CumulativePoints}}</td><td>{{signed .CumulativeGoalDiff}}</td></tr>
{{end}}
</tbody>
</table>
{{end}}

{{define "side"}}
<h2>{{.Team}} ({{venue .Venue}})</h2>
{{if .Crest}}<p><img src="{{.Crest}}" alt="{{.Team}}"></p>{{end}}
<p>Overall position: {{ordinal .OverallPosition}}</p>
{{template "summary" .Summary}}
{{template "form" .Form}}
{{end}}

{{define "duel"}}
<h1>{{.Home.Team}} vs {{.Away.Team}}</h1>
{{template "side" .Home}}
{{template "side" .Away}}
{{template "h2h" meetings .Home.Team .Away.Team .Home.HeadToHead}}
{{end}}
`
