package csvimport

// TemplateFilename is the suggested download name for the reference file
const TemplateFilename = "maintenance-dashboard-template.csv"

// Template returns the reference file users can fill in for an import:
// the expected header plus three sample equipments across four months.
func Template() string {
	return `id,name,category,month,MTBF,MTTR,Availability,Cost,Status
comp-a1,Compressor A1,Compression,Mai,280,3.4,90,0.5,Operational
comp-a1,Compressor A1,Compression,Jun,310,3.1,92,0.45,Operational
comp-a1,Compressor A1,Compression,Jul,360,2.8,95,0.4,Operational
comp-a1,Compressor A1,Compression,Ago,390,2.6,96,0.35,Operational
este-b2,Esteira B2,Conveyors,Mai,330,2.7,93,0.38,Scheduled Maintenance
este-b2,Esteira B2,Conveyors,Jun,360,2.6,95,0.36,Scheduled Maintenance
este-b2,Esteira B2,Conveyors,Jul,410,2.4,97,0.34,Scheduled Maintenance
este-b2,Esteira B2,Conveyors,Ago,440,2.2,98,0.33,Scheduled Maintenance
motor-c3,Motor C3,Motors,Mai,270,3.2,91,0.62,Stopped
motor-c3,Motor C3,Motors,Jun,295,3.0,92,0.58,Stopped
motor-c3,Motor C3,Motors,Jul,330,2.9,94,0.56,Stopped
motor-c3,Motor C3,Motors,Ago,365,2.7,95,0.52,Stopped
`
}
