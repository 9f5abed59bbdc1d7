package render

// cvCSS is the fixed stylesheet for the traditional one-page CV layout.
// Output styling is not user-configurable.
const cvCSS = `
@page { size: A4; margin: 1cm; }
body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; font-size: 10pt; line-height: 1.4; color: #1a1a1a; }
h1 { font-size: 22pt; text-align: left; margin-bottom: 0px; font-weight: 600; letter-spacing: 0; }
p.contact-info { font-size: 9.5pt; text-align: left; margin-top: 0; margin-bottom: 8px; color: #333; }
h2 { font-size: 10.5pt; font-weight: 700; color: #000; border-bottom: 1.5px solid #000; padding-bottom: 1px; margin-top: 12px; margin-bottom: 6px; letter-spacing: 1.5px; text-transform: uppercase; }
p.summary-text { text-align: justify; margin-top: 0; font-size: 10pt; }
ul { padding-left: 17px; margin-top: 3px; list-style-type: disc; }
li { margin-bottom: 5px; padding-left: 3px; text-align: justify; }
li strong { font-weight: 700; }
p.job-header { font-size: 10.5pt; font-weight: 700; margin-top: 8px; margin-bottom: 3px; }
span.company { font-weight: 400; }
`

// cvTemplate renders one candidate record as a complete HTML document
const cvTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>{{.CSS}}</style>
</head>
<body>
<h1>{{.Record.CandidateName}}</h1>
<p class="contact-info">{{.Record.Contact}}</p>
{{if .Record.SummaryText}}<h2>Summary</h2>
<p class="summary-text">{{.Record.SummaryText}}</p>
{{end}}{{if .Record.Competencies}}<h2>Core Competencies</h2>
<ul>
{{range .Record.Competencies}}<li><strong>{{.Title}}:</strong> {{.Description}}</li>
{{end}}</ul>
{{end}}{{if .Record.ProfessionalHistory}}<h2>Professional Experience</h2>
{{range .Record.ProfessionalHistory}}<p class="job-header">{{.Role}} <span class="company">| {{.Company}} | {{.Dates}}</span></p>
<ul>
{{range .Accomplishments}}<li>{{.}}</li>
{{end}}</ul>
{{end}}{{end}}{{if .Record.Education}}<h2>Education</h2>
<p>{{.Record.Education}}</p>
{{end}}{{if .AwardCategories}}<h2>Awards &amp; Leadership</h2>
<ul>
{{range .AwardCategories}}<li><strong>{{.Name}}:</strong> {{.Description}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`
