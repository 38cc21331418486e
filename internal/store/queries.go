package store

const (
	savePersonQuery = `
		MERGE (p:Person {id: $id})
		SET p.first_name = $first_name,
			p.last_name = $last_name,
			p.gender = $gender,
			p.birth_year = $birth_year,
			p.death_year = $death_year,
			p.date_of_birth = $date_of_birth,
			p.date_of_death = $date_of_death,
			p.location = $location,
			p.profile_photo = $profile_photo,
			p.father_id = $father_id,
			p.mother_id = $mother_id,
			p.spouse_id = $spouse_id,
			p.created_at = $created_at
		RETURN p.id AS id
	`

	listPersonsQuery = `
		MATCH (p:Person)
		RETURN p
		ORDER BY p.created_at, p.id
	`

	getPersonQuery = `
		MATCH (p:Person {id: $id})
		RETURN p
	`

	deletePersonQuery = `
		MATCH (p:Person {id: $id})
		DETACH DELETE p
	`

	saveRelationshipQuery = `
		MATCH (from:Person {id: $from_id})
		MATCH (to:Person {id: $to_id})
		CREATE (from)-[r:RELATED {id: $id, type: $type, created_at: $created_at}]->(to)
		RETURN r.id AS id
	`

	countRelationshipTripleQuery = `
		MATCH (:Person {id: $from_id})-[r:RELATED {type: $type}]->(:Person {id: $to_id})
		RETURN count(r) AS total
	`

	listRelationshipsQuery = `
		MATCH (from:Person)-[r:RELATED]->(to:Person)
		RETURN r.id AS id, r.type AS type, from.id AS from_id, to.id AS to_id, r.created_at AS created_at
		ORDER BY r.created_at, r.id
	`

	listRelationshipsForPersonQuery = `
		MATCH (from:Person)-[r:RELATED]->(to:Person)
		WHERE from.id = $person_id OR to.id = $person_id
		RETURN r.id AS id, r.type AS type, from.id AS from_id, to.id AS to_id, r.created_at AS created_at
		ORDER BY r.created_at, r.id
	`

	getRelationshipQuery = `
		MATCH (from:Person)-[r:RELATED {id: $id}]->(to:Person)
		RETURN r.id AS id, r.type AS type, from.id AS from_id, to.id AS to_id, r.created_at AS created_at
	`

	deleteRelationshipQuery = `
		MATCH ()-[r:RELATED {id: $id}]->()
		DELETE r
	`
)
