package model

// StudentRef is the engine's view of an enrolled student.  The record is
// owned by the roster tables the synchronization job maintains; the
// engine only needs a stable identity (CodEtu) and a name usable for
// deterministic ordering.
//
// Fields:
//  CodEtu – unique student code, the comparable identity.
//  Nom    – surname, used to order cohorts before slicing.
//  Prenom – first name.
type StudentRef struct {
	CodEtu string `json:"cod_etu"` // etudiants.cod_etu
	Nom    string `json:"nom"`     // etudiants.nom
	Prenom string `json:"prenom"`  // etudiants.prenom
}
