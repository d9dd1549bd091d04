package graph

const (
	SaveProblemQuery = `
		MERGE (p:Problem {id: $id})
		SET p.category = $category,
			p.winner = $winner,
			p.winning_answer = $winning_answer,
			p.success = $success,
			p.run_id = $run_id
		RETURN p.id AS id
	`

	SaveModelQuery = `
		MERGE (m:Model {name: $name})
		RETURN m.name AS name
	`

	SaveSolvedEdgeQuery = `
		MATCH (m:Model {name: $model})
		MATCH (p:Problem {id: $problem_id})
		MERGE (m)-[e:SOLVED {solver_id: $solver_id, problem_id: $problem_id}]->(p)
		SET e.answer = $answer,
			e.refined_answer = $refined_answer,
			e.confidence = $confidence,
			e.changed = $changed
		RETURN e.solver_id AS solver_id
	`

	SaveReviewedEdgeQuery = `
		MATCH (r:Model {name: $reviewer})
		MATCH (t:Model {name: $target})
		MERGE (r)-[e:REVIEWED {problem_id: $problem_id, reviewer_id: $reviewer_id, target_id: $target_id}]->(t)
		SET e.verdict = $verdict,
			e.confidence = $confidence
		RETURN e.reviewer_id AS reviewer_id
	`

	SaveJudgedEdgeQuery = `
		MATCH (m:Model {name: $model})
		MATCH (p:Problem {id: $problem_id})
		MERGE (m)-[e:JUDGED {problem_id: $problem_id}]->(p)
		SET e.winner = $winner,
			e.confidence = $confidence
		RETURN e.winner AS winner
	`
)
